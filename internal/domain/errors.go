package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by services, repositories and the HTTP layer.
// Everything except ErrTransient is terminal and must not be retried.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrValidation       = errors.New("validation failed")
	ErrGroupMismatch    = errors.New("item is not in the given simultaneous group")
	ErrCapacityExceeded = errors.New("agenda item is at capacity")
	ErrVersionConflict  = errors.New("agenda item was modified concurrently")
	ErrInvalidInput     = errors.New("invalid input")
	ErrTransient        = errors.New("temporarily unavailable")
)

// ValidationError lists the fields that failed validation. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// TransientError wraps a store or network failure that may succeed on retry.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient: " + e.Err.Error() }

func (e *TransientError) Unwrap() []error { return []error{ErrTransient, e.Err} }

// IsRetryable reports whether err may be retried at the calling boundary.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
