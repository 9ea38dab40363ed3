package enums

import "fmt"

// NotificationSource names the entity a notification originates from.
type NotificationSource string

const (
	NotificationSourceEvent     NotificationSource = "Event"
	NotificationSourceTask      NotificationSource = "Task"
	NotificationSourceComment   NotificationSource = "Comment"
	NotificationSourceQuotation NotificationSource = "Quotation"
)

var validNotificationSources = []NotificationSource{
	NotificationSourceEvent,
	NotificationSourceTask,
	NotificationSourceComment,
	NotificationSourceQuotation,
}

// String implements fmt.Stringer.
func (n NotificationSource) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationSource.
func (n NotificationSource) IsValid() bool {
	for _, candidate := range validNotificationSources {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationSource converts raw input into a NotificationSource.
func ParseNotificationSource(value string) (NotificationSource, error) {
	for _, candidate := range validNotificationSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification source %q", value)
}
