package models

import (
	"errors"
	"strings"
)

// Sentinel domain errors. Services wrap these with context; handlers map
// them to HTTP statuses with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("operation not permitted in current state")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
)

// ValidationError collects field-level, user-correctable problems so a
// form can be redisplayed with the full list at once.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}

// Invalid builds a ValidationError from one or more reasons.
func Invalid(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}
