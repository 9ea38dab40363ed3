package enums

import "fmt"

// TaskStatus tracks progress of a single task inside an event plan.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NotStarted"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusDelayed    TaskStatus = "Delayed"
	TaskStatusCancelled  TaskStatus = "Cancelled"
)

var validTaskStatuses = []TaskStatus{
	TaskStatusNotStarted,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusDelayed,
	TaskStatusCancelled,
}

// String implements fmt.Stringer.
func (t TaskStatus) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TaskStatus.
func (t TaskStatus) IsValid() bool {
	for _, candidate := range validTaskStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTaskStatus converts raw input into a TaskStatus.
func ParseTaskStatus(value string) (TaskStatus, error) {
	for _, candidate := range validTaskStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid task status %q", value)
}

// AllTaskStatuses returns every status in display order.
func AllTaskStatuses() []TaskStatus {
	out := make([]TaskStatus, len(validTaskStatuses))
	copy(out, validTaskStatuses)
	return out
}
