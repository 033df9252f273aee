package handlers

import (
	"net/http"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/branch"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/menu"

	"github.com/gin-gonic/gin"
)

// ListBranches is the handler for GET /v1/branches. Customers only see
// active branches.
func (h *Handlers) ListBranches(c *gin.Context) {
	branches, err := h.Branches.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

// GetBranch is the handler for GET /v1/branches/:id.
func (h *Handlers) GetBranch(c *gin.Context) {
	branchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.Branches.Get(c.Request.Context(), branchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branch": b})
}

// CreateBranch is the handler for POST /v1/branches (admin only).
func (h *Handlers) CreateBranch(c *gin.Context) {
	var input branch.CreateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.Branches.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"branch": b})
}

// UpdateBranch is the handler for PATCH /v1/branches/:id (admin only).
func (h *Handlers) UpdateBranch(c *gin.Context) {
	branchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input branch.UpdateBranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.Branches.Update(c.Request.Context(), branchID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branch": b})
}

// GetBranchMenu is the handler for GET /v1/branches/:id/menu.
func (h *Handlers) GetBranchMenu(c *gin.Context) {
	branchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var category *string
	if cat := c.Query("category"); cat != "" {
		category = &cat
	}

	items, err := h.Menu.ListForBranch(c.Request.Context(), branchID, category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetBranchItemPrice is the handler for GET /v1/branches/:id/menu/:item_id,
// the effective price of one item at one branch.
func (h *Handlers) GetBranchItemPrice(c *gin.Context) {
	branchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	priceCents, err := h.Menu.ResolvePrice(c.Request.Context(), branchID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"branch_id":    branchID,
		"menu_item_id": itemID,
		"price_cents":  priceCents,
	})
}

// CreateMenuItem is the handler for POST /v1/menu-items (admin only).
func (h *Handlers) CreateMenuItem(c *gin.Context) {
	var input menu.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Menu.CreateItem(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateMenuItem is the handler for PATCH /v1/menu-items/:id (admin only).
func (h *Handlers) UpdateMenuItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input menu.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Menu.UpdateItem(c.Request.Context(), itemID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// SetBranchPrice is the handler for PUT /v1/branches/:id/menu, the
// branch-level price override and availability toggle.
func (h *Handlers) SetBranchPrice(c *gin.Context) {
	branchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input menu.BranchPriceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Menu.SetBranchPrice(c.Request.Context(), branchID, input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "branch price updated"})
}
