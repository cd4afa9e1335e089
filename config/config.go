package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Govind-619/StudioSite/utils"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	RazorpayKeyID          string
	RazorpayKeySecret      string
	RazorpayTimeoutSeconds int

	AdminEmail    string
	AdminPassword string

	CORSOrigin string
	RedisAddr  string
	LogDir     string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// LoadConfig loads configuration from a .env file, if present, and the environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:            getEnv("DB_HOST", utils.DefaultDBHost),
		DBPort:            getEnv("DB_PORT", utils.DefaultDBPort),
		DBUser:            getEnv("DB_USER", utils.DefaultDBUser),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getEnv("DB_NAME", utils.DefaultDBName),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		Port:              getEnv("PORT", utils.DefaultPort),
		Env:               getEnv("ENV", "development"),
		RazorpayKeyID:     strings.TrimSpace(os.Getenv("RAZORPAY_KEY_ID")),
		RazorpayKeySecret: strings.TrimSpace(os.Getenv("RAZORPAY_KEY_SECRET")),
		AdminEmail:        strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		CORSOrigin:        os.Getenv("CORS_ORIGIN"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		LogDir:            getEnv("LOG_DIR", utils.DefaultLogDir),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:          os.Getenv("SMTP_FROM"),
	}

	var err error
	if config.RazorpayTimeoutSeconds, err = getEnvInt("RAZORPAY_TIMEOUT_SECONDS", int(utils.DefaultGatewayTimeout/time.Second)); err != nil {
		return nil, err
	}
	if config.SMTPPort, err = getEnvInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}

	return config, nil
}

// PaymentsEnabled reports whether both Razorpay credentials are configured
func (c *Config) PaymentsEnabled() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// CORSOrigins splits CORS_ORIGIN into its comma separated origins
func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// GatewayTimeout is the Razorpay request timeout
func (c *Config) GatewayTimeout() time.Duration {
	if c.RazorpayTimeoutSeconds <= 0 {
		return utils.DefaultGatewayTimeout
	}
	return time.Duration(c.RazorpayTimeoutSeconds) * time.Second
}

// DSN builds the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// EmailConfig returns the SMTP settings for the mailer
func (c *Config) EmailConfig() utils.EmailConfig {
	return utils.EmailConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
