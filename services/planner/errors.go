package planner

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session token is unknown or expired.
var ErrSessionNotFound = errors.New("planner session not found or expired")

// InvalidRequestError marks malformed input to the planner: a caller bug,
// never retried internally.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Message)
}

func NewInvalidRequestError(msg string) error {
	return &InvalidRequestError{Message: msg}
}

// SchemaViolationError means an assembled itinerary failed its own
// invariants. It is surfaced rather than silently repaired so the planner
// never emits malformed output.
type SchemaViolationError struct {
	Message string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation: %s", e.Message)
}

func NewSchemaViolationError(msg string) error {
	return &SchemaViolationError{Message: msg}
}
