package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/order"

	"github.com/gin-gonic/gin"
)

// PlaceOrder is the handler for POST /v1/orders.
func (h *Handlers) PlaceOrder(c *gin.Context) {
	var input order.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agg, err := h.Orders.Place(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": agg})
}

// GetOrder is the handler for GET /v1/orders/:id.
func (h *Handlers) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	agg, err := h.Orders.Get(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": agg})
}

// ListOrders is the handler for GET /v1/orders. Filters come in as
// query parameters; scoping by role happens below the handler.
func (h *Handlers) ListOrders(c *gin.Context) {
	var filter order.OrderFilterInput

	if s := c.Query("status"); s != "" {
		status := order.OrderStatus(s)
		filter.Status = &status
	}
	if b := c.Query("branch_id"); b != "" {
		id, err := strconv.ParseUint(b, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid branch_id"})
			return
		}
		branchID := uint(id)
		filter.BranchID = &branchID
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_from"})
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_to"})
			return
		}
		filter.DateTo = &t
	}

	limit := parseInt32(c.DefaultQuery("limit", "20"), 20)
	page := parseInt32(c.DefaultQuery("page", "1"), 1)

	orders, err := h.Orders.List(c.Request.Context(), &filter, limit, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "page": page, "limit": limit})
}

type updateStatusInput struct {
	Status order.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus is the handler for PATCH /v1/orders/:id/status.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input updateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agg, err := h.Orders.UpdateStatus(c.Request.Context(), orderID, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": agg})
}

// CancelOrder is the handler for POST /v1/orders/:id/cancel.
func (h *Handlers) CancelOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	agg, err := h.Orders.Cancel(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": agg})
}

// TrackOrder is the handler for GET /v1/orders/:id/location, the
// customer-facing rider position endpoint.
func (h *Handlers) TrackOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// ownership check rides on the aggregate fetch
	if _, err := h.Orders.Get(c.Request.Context(), orderID); err != nil {
		respondError(c, err)
		return
	}

	loc, err := h.Riders.GetLocationByOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": loc})
}

func parseInt32(s string, fallback int32) int32 {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}
