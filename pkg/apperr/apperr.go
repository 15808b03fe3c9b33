// Package apperr holds the error classes shared by the use cases and
// mapped to HTTP statuses by the handlers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation: request rejected before any I/O.
	ErrValidation = errors.New("validation error")
	// ErrNotFound: nothing matched; callers render an empty result.
	ErrNotFound = errors.New("not found")
	// ErrUpstream: an external service failed or returned non-2xx.
	ErrUpstream = errors.New("upstream error")
	// ErrMalformedResponse is a 2xx upstream reply missing expected fields.
	ErrMalformedResponse = fmt.Errorf("%w: malformed response", ErrUpstream)
)

// Validation returns an ErrValidation carrying msg.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NotFound returns an ErrNotFound carrying msg.
func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// Upstream wraps err as an ErrUpstream for the named service.
func Upstream(service string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstream, service, err)
}
