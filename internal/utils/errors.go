package utils

import (
	"errors"
)

// Common error types for consistent handling across services and controllers.
// Services wrap these sentinels; the HTTP boundary alone maps them to status
// codes.
var (
	ErrValidation = errors.New("validation error")
	ErrDatabase   = errors.New("database error")
)

// IsValidationError checks if an error is a "validation error"
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsDatabaseError checks if an error is a store-level failure
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabase)
}
