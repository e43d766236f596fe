package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when a create payload fails validation
// (missing field, oversized field, oversized tag).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned by the repo when an insert violates the unique
// nickname constraint. It is still a write failure, so handlers map it to 422.
var ErrConflict = errors.New("conflict")

// ErrInvalidSearch is returned by search functions when the term is empty.
// Handlers should map this to HTTP 400.
var ErrInvalidSearch = errors.New("invalid search")

// ValidationError carries the message shown to the client for a rejected
// payload. It unwraps to ErrValidation so callers can match with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError returns a *ValidationError with the given client message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
