package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Fatal pipeline errors - any of these aborts the whole run
	ErrSourceNotFound = errors.New("source table not found")
	ErrNoData         = errors.New("source table has no data rows")
	ErrMissingColumn  = errors.New("required column missing from headers")

	// Concurrency guard
	ErrRunInProgress = errors.New("a run is already in progress")
)

// NewMissingColumnError reports a required column absent from the header row
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %q", ErrMissingColumn, column)
}

// NewSourceNotFoundError reports a missing source table or file
func NewSourceNotFoundError(source string) error {
	return fmt.Errorf("%w: %s", ErrSourceNotFound, source)
}

// NewValidationError reports an invalid field value with a reason
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// IsNotFoundError checks whether err is a not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsFatal reports whether err aborts a whole pipeline run
func IsFatal(err error) bool {
	return errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, ErrNoData) ||
		errors.Is(err, ErrMissingColumn)
}
