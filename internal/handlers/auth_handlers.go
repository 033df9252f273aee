package handlers

import (
	"net/http"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/user"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// Register is the handler for POST /v1/auth/register. New accounts are
// always customers; staff and rider accounts are provisioned by admins.
func (h *Handlers) Register(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.Users.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
}

// Login is the handler for POST /v1/auth/login.
func (h *Handlers) Login(c *gin.Context) {
	var input user.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.Users.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// Logout clears the auth cookie.
func (h *Handlers) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me is the handler for GET /v1/auth/me.
func (h *Handlers) Me(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	u, err := h.Users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func setAuthCookie(c *gin.Context, token string) {
	// 24h, matching the token's own expiry
	c.SetCookie("access_token", token, 24*60*60, "/", "", false, true)
}
