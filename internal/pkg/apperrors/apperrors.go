package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError signals invalid caller input, raised before any remote
// call is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf creates a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RemoteError wraps a per-item failure from the record store or an external
// collaborator. Batch operations record these per id instead of aborting.
type RemoteError struct {
	ID  string
	Err error
}

func (e *RemoteError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("remote call failed: %v", e.Err)
	}
	return fmt.Sprintf("remote call failed for %s: %v", e.ID, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Remote wraps err as a RemoteError for the given record id.
func Remote(id string, err error) error {
	return &RemoteError{ID: id, Err: err}
}

// ParseError marks malformed stored data encountered during a scan.
// It is always downgraded to a skipped/defaulted record, never fatal.
type ParseError struct {
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("malformed data: %v", e.Err)
	}
	return fmt.Sprintf("malformed data on %s: %v", e.ID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// HealthCheckError means a probe could not complete, as opposed to a probe
// that completed and reported unhealthy.
type HealthCheckError struct {
	Probe string
	Err   error
}

func (e *HealthCheckError) Error() string {
	return fmt.Sprintf("health probe %s failed: %v", e.Probe, e.Err)
}

func (e *HealthCheckError) Unwrap() error { return e.Err }
