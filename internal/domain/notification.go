package domain

// Severity notification severity level.
type Severity string

const (
	// SeverityInfo informational acknowledgement.
	SeverityInfo Severity = "info"
	// SeverityWarning recoverable rejection, the user may adjust and retry.
	SeverityWarning Severity = "warning"
	// SeverityError submission path failure.
	SeverityError Severity = "error"
)

// Notification transient user-facing message.
type Notification struct {
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// String returns the string representation.
func (n Notification) String() string {
	return string(n.Severity) + ": " + n.Title + ": " + n.Description
}
