package calendar

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when an event operation runs without a
// connected session. The orchestrator treats this path as a silent no-op;
// the sentinel exists for callers that reach the client directly.
var ErrNotConnected = errors.New("calendar session not connected")

// CalendarError wraps a failed call against the external calendar API.
// Calendar failures are never fatal to the triggering operation.
type CalendarError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *CalendarError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("calendar %s failed (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("calendar %s failed: %v", e.Op, e.Err)
}

func (e *CalendarError) Unwrap() error {
	return e.Err
}

// IsCalendarError reports whether err is (or wraps) a CalendarError
func IsCalendarError(err error) bool {
	var ce *CalendarError
	return errors.As(err, &ce)
}

func calErr(op string, status int, err error) *CalendarError {
	return &CalendarError{Op: op, StatusCode: status, Err: err}
}
