// Package apperrors defines the sentinel errors shared across layers.
package apperrors

import "errors"

var (
	// ErrNotFound means a selector resolved to no project.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable means a backing store could not answer within the
	// caller's deadline. It is transient; callers may retry with backoff.
	ErrStoreUnavailable = errors.New("store unavailable")
)
