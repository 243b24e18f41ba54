package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "₹150.00", FormatMoney(decimal.NewFromInt(150)))
	assert.Equal(t, "₹7.50", FormatMoney(decimal.NewFromFloat(7.5)))
	assert.Equal(t, "₹0.00", FormatMoney(decimal.Zero))
	assert.Equal(t, "₹142.50", FormatMoneyFloat(142.5))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "23:00:00", FormatClock(23*time.Hour))
	assert.Equal(t, "00:00:01", FormatClock(time.Second))
	assert.Equal(t, "01:02:03", FormatClock(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "00:00:00", FormatClock(0))
	assert.Equal(t, "00:00:00", FormatClock(-time.Minute))

	// Hours keep accumulating past a day instead of rolling over.
	assert.Equal(t, "25:30:00", FormatClock(25*time.Hour+30*time.Minute))
}

func TestFormatTimestamp(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "2025-03-14 09:26:53", FormatTimestamp(at))
}
