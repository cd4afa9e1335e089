package routes

import (
	"net/http"

	"github.com/Govind-619/StudioSite/controllers"
	"github.com/Govind-619/StudioSite/middleware"
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Dependencies are the handlers and collaborators the router mounts
type Dependencies struct {
	Payments    *controllers.PaymentController
	Admin       *controllers.AdminController
	AdminOrders *controllers.AdminOrderController
	Admins      middleware.AdminLookup
	Limiter     utils.RateLimiter
	JWTSecret   string
	CORSOrigins []string
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())
	router.Use(utils.CORSMiddleware(deps.CORSOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(utils.BodyLimitMiddleware(utils.MaxBodyBytes))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(utils.RateLimitMiddleware(deps.Limiter, "api", utils.APIRateLimit, utils.APIRateWindow))
	{
		initPaymentRoutes(api, deps)
		initAdminRoutes(api, deps)
	}

	return router
}
