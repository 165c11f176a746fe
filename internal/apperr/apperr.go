// Package apperr defines the sentinel errors shared by services and
// handlers. Services wrap these with fmt.Errorf("...: %w", ...) and
// handlers pick the HTTP status with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound signals an unknown user or resource id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput signals a request rejected before any mutation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict signals an optimistic-concurrency collision that was
	// retried internally and still failed.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable signals the persistence store being unreachable.
	ErrUnavailable = errors.New("upstream unavailable")
)
