package routes

import (
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-gonic/gin"
)

// initPaymentRoutes mounts the public checkout endpoints
func initPaymentRoutes(router *gin.RouterGroup, deps Dependencies) {
	payments := router.Group("/payments")
	payments.Use(utils.RateLimitMiddleware(deps.Limiter, "payments", utils.PaymentRateLimit, utils.PaymentRateWindow))
	{
		payments.POST("/order", deps.Payments.CreateOrder)
		payments.POST("/verify", deps.Payments.VerifyPayment)
	}
}
