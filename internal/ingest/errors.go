package ingest

import (
	"errors"
	"fmt"
)

// Common ingest errors
var (
	// ErrUnsupportedFormat is returned when the file extension is not a
	// readable spreadsheet format.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

	// ErrEmptyTable is returned when the source has no header row.
	ErrEmptyTable = errors.New("spreadsheet has no header row")

	// ErrUnknownField is returned when a mapping override names a field that
	// is not a canonical invoice field.
	ErrUnknownField = errors.New("unknown invoice field")

	// ErrUnknownColumn is returned when a mapping override names a column the
	// source does not have.
	ErrUnknownColumn = errors.New("column not present in source")

	// ErrMissingRequiredField is returned when a required invoice field has no
	// mapped column after detection and overrides.
	ErrMissingRequiredField = errors.New("missing required field mapping")
)

// IngestError wraps errors with the operation and source that failed.
type IngestError struct {
	// Op is the operation that failed (e.g., "ReadFile", "Import").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *IngestError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ingest: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ingest: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *IngestError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *IngestError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewIngestError creates a new IngestError.
func NewIngestError(op string, err error, details string) *IngestError {
	return &IngestError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}
