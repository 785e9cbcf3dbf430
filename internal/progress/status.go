package progress

// Status is the derived state of a milestone. It is never stored.
type Status string

const (
	StatusLocked     Status = "locked"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// AllStatuses returns every status in display order.
func AllStatuses() []Status {
	return []Status{StatusCompleted, StatusInProgress, StatusLocked}
}

// Label returns a human-readable name.
func (s Status) Label() string {
	switch s {
	case StatusLocked:
		return "Locked"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Icon returns a single-glyph marker for list views.
func (s Status) Icon() string {
	switch s {
	case StatusCompleted:
		return "✓"
	case StatusInProgress:
		return "▸"
	default:
		return "🔒"
	}
}
