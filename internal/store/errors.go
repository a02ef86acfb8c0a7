package store

import (
	"errors"
	"fmt"
)

// ValidationError indicates a locally detected missing or invalid required
// field. It is returned before any statement reaches the database.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// StoreError wraps a failed persistence call. Repositories return it as a
// value so callers can decide per-call whether the failure is fatal.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStoreError reports whether err is (or wraps) a StoreError
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

func storeErr(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
