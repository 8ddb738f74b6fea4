package models

import "time"

// Event types recorded in the notice log.
const (
	EventSyncError    = "SYNC_ERROR"
	EventSyncResumed  = "SYNC_RESUMED"
	EventCommand      = "COMMAND"
	EventCommandError = "COMMAND_ERROR"
	EventFocus        = "FOCUS"
)

var eventTypes = map[string]struct{}{
	EventSyncError:    {},
	EventSyncResumed:  {},
	EventCommand:      {},
	EventCommandError: {},
	EventFocus:        {},
}

// IsEventType reports whether t names a notice type the log records.
func IsEventType(t string) bool {
	_, ok := eventTypes[t]
	return ok
}

// DashboardEvent is a single operator notice.
type DashboardEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // SYNC_ERROR | SYNC_RESUMED | COMMAND | COMMAND_ERROR | FOCUS
	Header      string    `json:"header"`      // short title shown in the notice panel
	Description string    `json:"description"` // device message or error text
	Metadata    any       `json:"metadata,omitempty"`
}
