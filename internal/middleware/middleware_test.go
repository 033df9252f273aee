package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/user"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actorRouter(extra ...gin.HandlerFunc) (*gin.Engine, *string, *uint) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var seenRole string
	var seenUserID uint

	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		seenRole = utils.GetUserRoleFromContext(c.Request.Context())
		seenUserID, _ = utils.GetUserIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	r.GET("/protected", handlers...)
	return r, &seenRole, &seenUserID
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := user.GenerateJWT(user.User{ID: 42, Email: "a@b.c", Role: user.RoleCustomer})
	require.NoError(t, err)

	t.Run("Valid token populates actor", func(t *testing.T) {
		r, role, userID := actorRouter()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, string(user.RoleCustomer), *role)
		assert.Equal(t, uint(42), *userID)
	})

	t.Run("Missing token leaves context empty", func(t *testing.T) {
		r, role, _ := actorRouter()
		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "", *role)
	})

	t.Run("Garbage token ignored", func(t *testing.T) {
		r, role, _ := actorRouter()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "", *role)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r, _, _ := actorRouter(RequireAuth())

	t.Run("Rejects anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Allows authenticated", func(t *testing.T) {
		token, err := user.GenerateJWT(user.User{ID: 1, Role: user.RoleCustomer})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r, _, _ := actorRouter(RequireRole(utils.RoleAdmin, utils.RoleBranchManager))

	t.Run("Rejects wrong role", func(t *testing.T) {
		token, err := user.GenerateJWT(user.User{ID: 1, Role: user.RoleCustomer})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Allows listed role", func(t *testing.T) {
		token, err := user.GenerateJWT(user.User{ID: 1, Role: user.RoleAdmin})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestResolveRateTier(t *testing.T) {
	tests := []struct {
		path string
		tier string
	}{
		{"/v1/auth/login", "strict"},
		{"/v1/auth/register", "strict"},
		{"/v1/rider/location", "location"},
		{"/v1/orders", "general"},
	}

	for _, tc := range tests {
		req := httptest.NewRequest("POST", tc.path, nil)
		_, _, tier := resolveRateTier(req)
		assert.Equal(t, tc.tier, tier, tc.path)
	}
}

func TestRateLimitMiddleware_BucketsPerAuthenticatedUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	tokenA, err := user.GenerateJWT(user.User{ID: 9001, Email: "a@b.c", Role: user.RoleCustomer})
	require.NoError(t, err)
	tokenB, err := user.GenerateJWT(user.User{ID: 9002, Email: "b@b.c", Role: user.RoleCustomer})
	require.NoError(t, err)

	// Auth resolution must precede the limiter so the user identity,
	// not the shared IP, keys the bucket.
	r := gin.New()
	r.Use(AuthMiddleware())
	r.Use(RateLimitMiddleware())
	r.POST("/v1/auth/refresh", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(token string) int {
		req := httptest.NewRequest("POST", "/v1/auth/refresh", nil)
		req.RemoteAddr = "10.9.9.9:4321"
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	var lastCode int
	for i := 0; i < 6; i++ {
		lastCode = send(tokenA)
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)

	// Same IP, different user: fresh bucket.
	assert.Equal(t, http.StatusOK, send(tokenB))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.POST("/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Burst for the strict tier is 5; the sixth immediate request must be rejected.
	var lastCode int
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest("POST", "/v1/auth/login", nil)
		req.RemoteAddr = "10.1.2.3:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		lastCode = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
