package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10, cfg.RateLimitRequests)
	assert.Equal(t, time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 0.05, cfg.CommissionRate)
	assert.Equal(t, 24*time.Hour, cfg.DeliveryWindow)
	assert.Equal(t, time.Second, cfg.CountdownTick)
	assert.Equal(t, 2*time.Second, cfg.PaymentRedirectDelay)
	assert.Equal(t, "seller@upi", cfg.DefaultUPIID)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MTD_API_URL", "https://market.example.com")
	t.Setenv("MTD_COMMISSION_RATE", "0.1")
	t.Setenv("MTD_DELIVERY_WINDOW", "48h")
	t.Setenv("MTD_RATE_LIMIT_REQUESTS", "25")
	t.Setenv("MTD_REQUEST_TIMEOUT", "3s")

	cfg := Load()

	assert.Equal(t, "https://market.example.com", cfg.APIBaseURL)
	assert.Equal(t, 0.1, cfg.CommissionRate)
	assert.Equal(t, 48*time.Hour, cfg.DeliveryWindow)
	assert.Equal(t, 25, cfg.RateLimitRequests)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MTD_COMMISSION_RATE", "five percent")
	t.Setenv("MTD_DELIVERY_WINDOW", "tomorrow")
	t.Setenv("MTD_RATE_LIMIT_REQUESTS", "lots")

	cfg := Load()

	assert.Equal(t, 0.05, cfg.CommissionRate)
	assert.Equal(t, 24*time.Hour, cfg.DeliveryWindow)
	assert.Equal(t, 10, cfg.RateLimitRequests)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	assert.NoError(t, cfg.Validate())

	cfg = Load()
	cfg.APIBaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.RequestTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.CommissionRate = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.CommissionRate = -0.01
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.RateLimitRequests = 0
	assert.Error(t, cfg.Validate())
}
