package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/address"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/branch"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/delivery"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/menu"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/order"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/rider"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/stats"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds every service the HTTP layer depends on.
type Handlers struct {
	Users      user.Service
	Branches   branch.Service
	Menu       menu.Service
	Orders     order.Service
	Riders     rider.Service
	Deliveries delivery.Service
	Stats      stats.Service
}

func New(users user.Service, branches branch.Service, menuSvc menu.Service,
	orders order.Service, riders rider.Service, deliveries delivery.Service,
	statsSvc stats.Service) *Handlers {
	return &Handlers{
		Users:      users,
		Branches:   branches,
		Menu:       menuSvc,
		Orders:     orders,
		Riders:     riders,
		Deliveries: deliveries,
		Stats:      statsSvc,
	}
}

// respondError maps domain sentinels onto HTTP statuses. Unknown errors
// become a generic 500 so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, order.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, branch.ErrBranchNotFound),
		errors.Is(err, menu.ErrItemNotFound),
		errors.Is(err, rider.ErrRiderNotFound),
		errors.Is(err, rider.ErrLocationNotFound),
		errors.Is(err, delivery.ErrNotAssigned):
		status = http.StatusNotFound
	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrTransitionConflict),
		errors.Is(err, menu.ErrItemUnavailable),
		errors.Is(err, branch.ErrBranchInactive),
		errors.Is(err, rider.ErrRiderBusy),
		errors.Is(err, rider.ErrRiderInactive),
		errors.Is(err, rider.ErrStatusConflict),
		errors.Is(err, delivery.ErrNotAssignable),
		errors.Is(err, delivery.ErrAlreadyAssigned),
		errors.Is(err, delivery.ErrAlreadyRated),
		errors.Is(err, delivery.ErrNotDelivered):
		status = http.StatusConflict
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrUnknownStatus),
		errors.Is(err, address.ErrInvalidAddress),
		errors.Is(err, rider.ErrInvalidCoordinates),
		errors.Is(err, menu.ErrInvalidPrice),
		errors.Is(err, delivery.ErrUnknownSubStatus),
		errors.Is(err, delivery.ErrInvalidRating):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("unhandled error", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
