// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Closed set of error kinds surfaced by the workflow layer. Every error
// returned from a capability boundary wraps exactly one of these, so callers
// dispatch on kind with errors.Is rather than on provider-specific types.
var (
	// ErrValidation is returned when input fails validation before any
	// external call is made.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when an operation would duplicate a unique
	// entity (e.g. a principal or user record with an existing email).
	ErrConflict = errors.New("conflict")

	// ErrNotFound is returned when a referenced principal or record does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned for bad credentials or an invalid or
	// expired session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternal is returned for unexpected failures from an external
	// store or channel. The underlying cause is logged, never echoed to
	// the caller.
	ErrInternal = errors.New("internal error")
)

// ValidationError carries the field that failed validation alongside the
// kind sentinel, so handlers can build a useful 400 without exposing
// internals.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: ErrValidation}
}
