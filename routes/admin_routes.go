package routes

import (
	"github.com/Govind-619/StudioSite/middleware"
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup, deps Dependencies) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login",
			utils.RateLimitMiddleware(deps.Limiter, "login", utils.LoginRateLimit, utils.LoginRateWindow),
			deps.Admin.Login)

		// Protected admin routes
		protected := admin.Group("")
		protected.Use(middleware.AdminAuthMiddleware(deps.JWTSecret, deps.Admins))
		{
			protected.GET("/orders", deps.AdminOrders.ListOrders)
			protected.GET("/orders/export", deps.AdminOrders.ExportOrders)
			protected.GET("/orders/:id", deps.AdminOrders.GetOrder)
			protected.GET("/orders/:id/invoice", deps.AdminOrders.DownloadInvoice)
			protected.PATCH("/orders/:id", deps.AdminOrders.UpdateOrder)
		}
	}
}
