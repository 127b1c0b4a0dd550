package medtrack

import (
	"errors"
	"fmt"
)

// ErrServiceUnavailable wraps transport-level failures reaching the
// med-tracker service. Callers inside the reminder core log it and retry
// only on the next natural schedule edge.
var ErrServiceUnavailable = errors.New("med-tracker service unavailable")

// ErrNotFound is returned for 404 responses (unknown schedule, course,
// or appointment IDs).
var ErrNotFound = errors.New("resource not found")

// StatusError is a non-2xx response from the service.
type StatusError struct {
	Code   int
	Detail string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("med-tracker: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("med-tracker: status %d: %s", e.Code, e.Detail)
}

// Unwrap maps 404 responses onto ErrNotFound so callers can use errors.Is.
func (e *StatusError) Unwrap() error {
	if e.Code == 404 {
		return ErrNotFound
	}
	return nil
}
