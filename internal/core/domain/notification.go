package domain

// Severity classifies a transient notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a single-slot transient status message. A new
// notification replaces the live one; nothing queues behind it.
type Notification struct {
	Text     string
	Severity Severity
}
