package services

import "errors"

var (
	// ErrNotFound means a referenced entity is absent. Surfaced to the
	// caller, never retried.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a guarded update lost to a concurrent writer or the
	// row was already in the target state. The losing caller gets a definite
	// rejection, never a silent double-write.
	ErrConflict = errors.New("conflict")

	// ErrInvalidTransition means the requested status change is not in the
	// booking transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation means malformed input was rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrNoEligibleProvider is the matcher's no-match signal.
	ErrNoEligibleProvider = errors.New("no eligible provider")

	// ErrPinMismatch means the supplied completion PIN did not match the
	// derived one.
	ErrPinMismatch = errors.New("completion pin mismatch")
)
