package enums

import "fmt"

// EventStatus tracks an event through its planning lifecycle.
type EventStatus string

const (
	EventStatusDraft           EventStatus = "Draft"
	EventStatusPendingApproval EventStatus = "PendingApproval"
	EventStatusApproved        EventStatus = "Approved"
	EventStatusInProgress      EventStatus = "InProgress"
	EventStatusCompleted       EventStatus = "Completed"
	EventStatusCancelled       EventStatus = "Cancelled"
)

var validEventStatuses = []EventStatus{
	EventStatusDraft,
	EventStatusPendingApproval,
	EventStatusApproved,
	EventStatusInProgress,
	EventStatusCompleted,
	EventStatusCancelled,
}

// String implements fmt.Stringer.
func (e EventStatus) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EventStatus.
func (e EventStatus) IsValid() bool {
	for _, candidate := range validEventStatuses {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEventStatus converts raw input into an EventStatus.
func ParseEventStatus(value string) (EventStatus, error) {
	for _, candidate := range validEventStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event status %q", value)
}

// AllEventStatuses returns every status in display order.
func AllEventStatuses() []EventStatus {
	out := make([]EventStatus, len(validEventStatuses))
	copy(out, validEventStatuses)
	return out
}
