package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store,
	// or exists only as a soft-deleted row.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint enforced by the backing store.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the backing store rejects a row because
	// of a check, not-null or foreign key constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUserNotFound indicates that no live user has the requested key.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrAttendanceEventNotFound indicates that the requested attendance event does not exist.
	ErrAttendanceEventNotFound = fmt.Errorf("%w: attendance event", ErrNotFound)

	// ErrEmailExists indicates that another user row, live or soft-deleted,
	// already holds the email.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError carries the entity and operation of a failed store call
// alongside the underlying error.
type StoreError struct {
	Entity    string // e.g. "user", "attendance_event"
	Operation string // e.g. "create", "soft_delete"
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
