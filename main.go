package main

import (
	"context"
	"log"
	"time"

	"github.com/Govind-619/StudioSite/config"
	"github.com/Govind-619/StudioSite/controllers"
	"github.com/Govind-619/StudioSite/payments"
	"github.com/Govind-619/StudioSite/routes"
	"github.com/Govind-619/StudioSite/store"
	"github.com/Govind-619/StudioSite/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Initialize logger
	if err := utils.InitLogger(cfg.LogDir); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.LogError("Database initialization failed: %v", err)
		log.Fatal("Database initialization failed:", err)
	}
	orders := store.NewOrderStore(db)
	admins := store.NewAdminStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := controllers.EnsureAdmin(ctx, admins, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		utils.LogError("Failed to seed admin: %v", err)
		log.Fatal("Failed to seed admin:", err)
	}
	cancel()

	var gateway payments.Gateway
	if cfg.PaymentsEnabled() {
		gateway = payments.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.GatewayTimeout())
		utils.LogInfo("Razorpay enabled with key %s", utils.MaskSecret(cfg.RazorpayKeyID))
	} else {
		utils.LogWarn("RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET not set, payments disabled")
	}
	lifecycle := payments.NewController(orders, gateway, cfg.RazorpayKeySecret)

	var limiter utils.RateLimiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		limiter = utils.NewRedisRateLimiter(client)
		utils.LogInfo("Rate limiting backed by Redis at %s", cfg.RedisAddr)
	} else {
		utils.LogWarn("REDIS_ADDR not set, rate limiting disabled")
	}

	var notifier controllers.PaymentNotifier
	if mailer := utils.NewMailer(cfg.EmailConfig()); mailer != nil {
		notifier = mailer
	}

	// Set up router
	router := routes.SetupRouter(routes.Dependencies{
		Payments:    controllers.NewPaymentController(lifecycle, notifier),
		Admin:       controllers.NewAdminController(admins, cfg.JWTSecret),
		AdminOrders: controllers.NewAdminOrderController(lifecycle),
		Admins:      admins,
		Limiter:     limiter,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins(),
	})

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
