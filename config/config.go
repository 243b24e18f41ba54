package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the client
type Config struct {
	Environment string

	// API connection
	APIBaseURL     string
	APIToken       string
	RequestTimeout time.Duration

	// Client-side request rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Order and payment display
	CommissionRate       float64
	DeliveryWindow       time.Duration
	CountdownTick        time.Duration
	PaymentRedirectDelay time.Duration

	// Catalog defaults
	DefaultProductImage string
	DefaultUPIID        string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Environment:          getEnv("ENVIRONMENT", "development"),
		APIBaseURL:           getEnv("MTD_API_URL", "http://localhost:5000"),
		APIToken:             getEnv("MTD_API_TOKEN", ""),
		RequestTimeout:       getEnvAsDuration("MTD_REQUEST_TIMEOUT", 15*time.Second),
		RateLimitRequests:    getEnvAsInt("MTD_RATE_LIMIT_REQUESTS", 10),
		RateLimitWindow:      getEnvAsDuration("MTD_RATE_LIMIT_WINDOW", time.Second),
		CommissionRate:       getEnvAsFloat("MTD_COMMISSION_RATE", 0.05),
		DeliveryWindow:       getEnvAsDuration("MTD_DELIVERY_WINDOW", 24*time.Hour),
		CountdownTick:        getEnvAsDuration("MTD_COUNTDOWN_TICK", time.Second),
		PaymentRedirectDelay: getEnvAsDuration("MTD_PAYMENT_REDIRECT_DELAY", 2*time.Second),
		DefaultProductImage:  getEnv("MTD_DEFAULT_PRODUCT_IMAGE", "/static/images/default-product.png"),
		DefaultUPIID:         getEnv("MTD_DEFAULT_UPI_ID", "seller@upi"),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.CommissionRate < 0 || c.CommissionRate >= 1 {
		return fmt.Errorf("commission rate must be in [0, 1), got %v", c.CommissionRate)
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("rate limit requests must be positive, got %d", c.RateLimitRequests)
	}
	if c.CountdownTick <= 0 {
		return fmt.Errorf("countdown tick must be positive, got %s", c.CountdownTick)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
