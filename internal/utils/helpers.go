package utils

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount as rupees with two decimals.
func FormatMoney(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

// FormatMoneyFloat formats a wire-format amount as rupees.
func FormatMoneyFloat(amount float64) string {
	return FormatMoney(decimal.NewFromFloat(amount))
}

// FormatClock decomposes a duration into hh:mm:ss. Durations of a day
// or more keep accumulating hours rather than rolling over.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatTimestamp formats an instant the way the server writes its
// order timestamps.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
