package interview

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session id is unknown or its session
// has expired.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoDelegate is returned when an AI-backed path runs without a configured
// delegate. Callers treat it like any other delegate failure.
var ErrNoDelegate = errors.New("no delegate configured")

// ValidationError marks a request that is malformed rather than a failure of
// the engine itself. Transport layers map it to a client error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
