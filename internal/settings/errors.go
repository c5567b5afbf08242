package settings

import (
	"errors"
	"fmt"
)

// Common settings errors
var (
	// ErrInvalidParameters is returned when a parameter set fails validation.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrUnknownKey is returned when an assignment names a parameter that
	// does not exist.
	ErrUnknownKey = errors.New("unknown parameter key")
)

// ValidationError describes one invalid parameter.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
