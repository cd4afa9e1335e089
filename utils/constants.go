package utils

import "time"

// Application constants
const (
	// Application name
	AppName = "StudioSite"

	// Default port
	DefaultPort = "8080"

	// Default database settings
	DefaultDBHost = "localhost"
	DefaultDBPort = "5432"
	DefaultDBName = "studiosite"
	DefaultDBUser = "postgres"

	// Default directory for log files
	DefaultLogDir = "logs"

	// Outbound payment gateway call timeout
	DefaultGatewayTimeout = 10 * time.Second

	// Admin JWT lifetime
	AdminTokenTTL = 7 * 24 * time.Hour

	// Maximum accepted JSON request body (1MB)
	MaxBodyBytes = 1 << 20

	// Default pagination limit
	DefaultPaginationLimit = 20

	// Maximum pagination limit
	MaxPaginationLimit = 100
)

// Rate limits per client IP
const (
	APIRateLimit      = 200
	APIRateWindow     = 15 * time.Minute
	PaymentRateLimit  = 30
	PaymentRateWindow = 10 * time.Minute
	LoginRateLimit    = 10
	LoginRateWindow   = 15 * time.Minute
)

// Error messages
const (
	ErrInvalidCredentials = "Invalid credentials"
	ErrInvalidInput       = "Invalid input"
	ErrUnauthorized       = "Please login for access"
	ErrTooManyRequests    = "Too many requests, please try again later"
	ErrInternalServer     = "Internal server error"
)
