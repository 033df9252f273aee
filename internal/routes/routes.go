package routes

import (
	"net/http"

	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/handlers"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/logger"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/middleware"
	"github.com/taciturn2021/food-delivery-webapp-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// Setup wires the full route table. Auth resolution runs before the
// rate limiter so authenticated traffic is bucketed per user rather
// than per IP; enforcement stays per group.
func Setup(h *handlers.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())
	r.Use(middleware.AuthMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Me)
	}

	branches := v1.Group("/branches")
	{
		branches.GET("", h.ListBranches)
		branches.GET("/:id", h.GetBranch)
		branches.GET("/:id/menu", h.GetBranchMenu)
		branches.GET("/:id/menu/:item_id", h.GetBranchItemPrice)
		branches.POST("", middleware.RequireRole(utils.RoleAdmin), h.CreateBranch)
		branches.PATCH("/:id", middleware.RequireRole(utils.RoleAdmin), h.UpdateBranch)
		branches.PUT("/:id/menu",
			middleware.RequireRole(utils.RoleAdmin, utils.RoleBranchManager), h.SetBranchPrice)
		branches.GET("/:id/riders",
			middleware.RequireRole(utils.RoleAdmin, utils.RoleBranchManager), h.ListBranchRiders)
	}

	menuItems := v1.Group("/menu-items", middleware.RequireRole(utils.RoleAdmin))
	{
		menuItems.POST("", h.CreateMenuItem)
		menuItems.PATCH("/:id", h.UpdateMenuItem)
	}

	orders := v1.Group("/orders", middleware.RequireAuth())
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/:id/location", h.TrackOrder)
		orders.POST("/:id/cancel", h.CancelOrder)
		orders.POST("/:id/rating", h.RateDelivery)
		orders.PATCH("/:id/status",
			middleware.RequireRole(utils.RoleAdmin, utils.RoleBranchManager), h.UpdateOrderStatus)
		orders.POST("/:id/assign",
			middleware.RequireRole(utils.RoleAdmin, utils.RoleBranchManager), h.AssignRider)
	}

	riders := v1.Group("/riders", middleware.RequireRole(utils.RoleAdmin))
	{
		riders.POST("", h.CreateRider)
	}

	riderSelf := v1.Group("/rider", middleware.RequireRole(utils.RoleRider))
	{
		riderSelf.PATCH("/shift", h.SetShift)
		riderSelf.PUT("/location", h.ReportLocation)
		riderSelf.GET("/delivery", h.CurrentDelivery)
		riderSelf.PATCH("/orders/:id/status", h.ReportDeliveryStatus)
	}

	admin := v1.Group("/admin", middleware.RequireRole(utils.RoleAdmin))
	{
		admin.GET("/dashboard", h.GetDashboard)
	}

	return r
}
