package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetDashboard is the handler for GET /v1/admin/dashboard.
func (h *Handlers) GetDashboard(c *gin.Context) {
	var from, to time.Time

	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
			return
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
			return
		}
		to = t
	}

	dash, err := h.Stats.Dashboard(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": dash})
}
