package sync

// Severity classifies a user-visible notification
type Severity string

const (
	// SeveritySuccess is a completed operation
	SeveritySuccess Severity = "success"
	// SeverityWarning is a completed operation with a degraded side effect
	// (calendar sync or secondary persist failed)
	SeverityWarning Severity = "warning"
	// SeverityError is a blocked operation (validation or store failure)
	SeverityError Severity = "error"
)

// Outcome is the single terminal result of an orchestrator operation,
// shaped to drive a transient notification. Internal step failures are
// absorbed here and never propagate as uncaught faults.
type Outcome struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`

	// Err carries the underlying cause for logging; never serialized.
	Err error `json:"-"`
}

// OK reports whether the operation's authoritative effect went through.
// Warnings count as OK: the action completed, a side effect degraded.
func (o *Outcome) OK() bool {
	return o.Severity != SeverityError
}

func success(title, message string) *Outcome {
	return &Outcome{Title: title, Message: message, Severity: SeveritySuccess}
}

func warning(title, message string, err error) *Outcome {
	return &Outcome{Title: title, Message: message, Severity: SeverityWarning, Err: err}
}

func failure(title, message string, err error) *Outcome {
	return &Outcome{Title: title, Message: message, Severity: SeverityError, Err: err}
}
