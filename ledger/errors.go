/*
errors.go - Centralized error types for the inventory engine

PURPOSE:
  All error types in one place. Callers match with errors.Is/errors.As;
  the HTTP layer maps them to status codes and user-facing notifications.

ERROR CATEGORIES:
  1. Validation errors - required field missing or coercion failed;
     the operation aborted with no partial mutation
  2. Not-found errors  - edit/delete target id does not exist
  3. Snapshot errors   - persistence read/write failures; never fatal

SNAPSHOT ERROR POLICY:
  Read failures are recovered silently via fallback defaults (logged, never
  surfaced to the user). Write failures leave in-memory state authoritative:
  they are logged and reported through the Ledger's write-failure hook, but
  the mutation that triggered the write stands.

SEE ALSO:
  - ledger.go: Validation and mutation paths producing these errors
  - api/handlers.go: Status-code mapping
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned when a required field is missing or fails
	// numeric coercion. The operation performed no mutation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an edit/delete target id is absent.
	ErrNotFound = errors.New("record not found")

	// ErrSnapshotRead is returned by snapshot stores when a stored value
	// cannot be read. Load recovers from it via fallback data.
	ErrSnapshotRead = errors.New("snapshot read failed")

	// ErrSnapshotWrite is returned by snapshot stores when a value cannot
	// be written. Non-fatal: the in-memory mutation is never rolled back.
	ErrSnapshotWrite = errors.New("snapshot write failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports which field failed and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports which collection was searched and for what id.
type NotFoundError struct {
	Collection string
	ID         int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Collection, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound)
}

func missingField(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
