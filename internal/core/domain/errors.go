package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLoad indicates a dataset could not be fetched or decoded.
	// Concrete failures are reported as *LoadError.
	ErrLoad = errors.New("dataset load failed")

	// ErrUnknownDataset indicates a dataset name that is not configured.
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrNoDetail indicates no record has been selected for the detail view.
	ErrNoDetail = errors.New("no detail selected")

	// ErrCorruptDetail indicates the stored detail handoff could not be parsed.
	ErrCorruptDetail = errors.New("corrupt detail data")

	// ErrInvalidExpression indicates a record predicate failed to compile or evaluate.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrPredicateUnavailable indicates a where expression was given but no
	// predicate compiler is configured.
	ErrPredicateUnavailable = errors.New("expression filtering unavailable")
)

// LoadError describes a failed dataset fetch.
// It unwraps to both ErrLoad and the underlying cause.
type LoadError struct {
	// URL is the location that was requested.
	URL string

	// StatusCode is the HTTP status, or zero when no response was received.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *LoadError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("load %s: unexpected status %d", e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("load %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("load %s: failed", e.URL)
	}
}

// Unwrap exposes ErrLoad and the cause to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLoad}
	}
	return []error{ErrLoad, e.Err}
}
