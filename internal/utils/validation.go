package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a client-side precondition failure. No
// request is sent when one of these is raised; the message is shown to
// the user as-is.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-scoped validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RequireNonEmpty checks that a required text field is filled in.
func RequireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, "is required")
	}
	return nil
}

// RequirePositiveInt checks that a numeric field is strictly positive.
func RequirePositiveInt(field string, value int) error {
	if value <= 0 {
		return NewValidationError(field, "must be a positive number")
	}
	return nil
}

// RequirePositiveFloat checks that an amount is strictly positive.
func RequirePositiveFloat(field string, value float64) error {
	if value <= 0 {
		return NewValidationError(field, "must be a positive number")
	}
	return nil
}

// IsValidURL reports whether the string parses as an absolute URL.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// ValidateUPIID checks the opaque seller payment identifier. The only
// structure the client relies on is the presence of an '@'.
func ValidateUPIID(upiID string) error {
	if strings.TrimSpace(upiID) == "" {
		return NewValidationError("upi_id", "is required")
	}
	if !strings.Contains(upiID, "@") {
		return NewValidationError("upi_id", "must look like yourname@upi")
	}
	return nil
}
