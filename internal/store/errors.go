package store

import (
	"errors"
	"fmt"
)

// Common store errors.
var (
	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")
)

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type, e.g. "task"
	Operation string // The operation that failed, e.g. "create"
	Message   string
	Err       error
	// Kind is the store sentinel this error matches with errors.Is.
	Kind error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is matches the store sentinel recorded in Kind.
func (e *StoreError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, kind, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
		Kind:      kind,
	}
}

// IsInvalidEntityError reports whether err was caused by entity validation.
func IsInvalidEntityError(err error) bool {
	return errors.Is(err, ErrInvalidEntity)
}
