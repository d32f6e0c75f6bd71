// Package apperr holds the sentinel errors every usecase raises and the HTTP
// layer maps to response codes. Wrap them with fmt.Errorf("...: %w", ...) so
// callers can still match with errors.Is.
package apperr

import "errors"

var (
	// ErrValidation marks malformed or out-of-range input, rejected before
	// any state change.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden marks an actor lacking the required role or ownership.
	// Distinct from ErrNotFound: the resource exists, the actor may not
	// touch it.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a referenced application or loan that is absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition marks an illegal status edge or a violated
	// precondition, e.g. disbursing a closed loan.
	ErrInvalidTransition = errors.New("invalid state transition")
)
