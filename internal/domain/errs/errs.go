// Package errs holds the cross-cutting error kinds the HTTP layer maps to
// status codes. Entity-specific sentinels live in their domain packages.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrUpstream     = errors.New("upstream service failed")
)

// Invalid builds an ErrInvalidInput carrying a readable reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Upstream marks err as a failure of an external dependency, keeping err in the chain.
func Upstream(service string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, service, err)
}
