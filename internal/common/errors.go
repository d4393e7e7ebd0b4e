package common

import "errors"

// Sentinel errors forming the operation error taxonomy. Services wrap these
// with context via fmt.Errorf("...: %w", ...); handlers map them to coded
// JSON responses with errors.Is.
var (
	// ErrValidation marks a missing or invalid required field. Nothing is
	// mutated before it is reported.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an acting role lacking permission for the
	// requested transition or resource. Reported before any mutation.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks a state conflict, e.g. insufficient stock for a
	// decrement or an invalid status transition. Checked before the
	// mutation is applied; no partial effect commits.
	ErrConflict = errors.New("conflict")
)
