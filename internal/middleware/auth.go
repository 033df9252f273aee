package middleware

import (
	"net/http"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/auth"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/user"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware parses the access token, if any, and places the actor
// into the request context. It never rejects by itself; RequireAuth and
// RequireRole do the gating.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		ctx := utils.SetActorContext(c.Request.Context(), claims.UserID, claims.Role, claims.BranchID, claims.RiderID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAuth aborts with 401 when no authenticated actor is present.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the actor has one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := utils.GetUserRoleFromContext(c.Request.Context())
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}
