package handlers

import (
	"net/http"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/delivery"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/order"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/rider"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// CreateRider is the handler for POST /v1/riders (admin only).
func (h *Handlers) CreateRider(c *gin.Context) {
	var input rider.CreateRiderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := h.Riders.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rider": r})
}

// ListBranchRiders is the handler for GET /v1/branches/:id/riders.
func (h *Handlers) ListBranchRiders(c *gin.Context) {
	branchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	riders, err := h.Riders.ListByBranch(c.Request.Context(), branchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"riders": riders})
}

type shiftInput struct {
	OnShift *bool `json:"on_shift" binding:"required"`
}

// SetShift is the handler for PATCH /v1/rider/shift. Riders toggle
// themselves on and off shift; a busy rider cannot go off shift.
func (h *Handlers) SetShift(c *gin.Context) {
	riderID, ok := utils.GetRiderIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": order.ErrForbidden.Error()})
		return
	}

	var input shiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Riders.SetOnShift(c.Request.Context(), riderID, *input.OnShift); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"on_shift": *input.OnShift})
}

type locationInput struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// ReportLocation is the handler for PUT /v1/rider/location. Only the
// latest position is kept per rider.
func (h *Handlers) ReportLocation(c *gin.Context) {
	riderID, ok := utils.GetRiderIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": order.ErrForbidden.Error()})
		return
	}

	var input locationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Riders.RecordLocation(c.Request.Context(), riderID, *input.Latitude, *input.Longitude); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "location recorded"})
}

// CurrentDelivery is the handler for GET /v1/rider/delivery.
func (h *Handlers) CurrentDelivery(c *gin.Context) {
	a, err := h.Deliveries.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	agg, err := h.Orders.Get(c.Request.Context(), a.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": a, "order": agg})
}

// ReportDeliveryStatus is the handler for PATCH /v1/rider/orders/:id/status.
func (h *Handlers) ReportDeliveryStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input delivery.ReportStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.Deliveries.ReportStatus(c.Request.Context(), orderID, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": a})
}

// AssignRider is the handler for POST /v1/orders/:id/assign (staff).
func (h *Handlers) AssignRider(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input delivery.AssignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.Deliveries.Assign(c.Request.Context(), orderID, input.RiderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"assignment": a})
}

// RateDelivery is the handler for POST /v1/orders/:id/rating.
func (h *Handlers) RateDelivery(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input delivery.RateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.Deliveries.Rate(c.Request.Context(), orderID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rating": rating})
}
