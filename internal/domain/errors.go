package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a payload fails validation.
	// It is always wrapped by a *ValidationError carrying the client-facing message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when a request body cannot be decoded.
	ErrInvalidFormat = errors.New("invalid request format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes the first rule a payload violated.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error returns the client-facing message.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
