package events

import "time"

type EventType string

const (
	EventTypeError   EventType = "error"
	EventTypeSuccess EventType = "success"
	EventTypeInfo    EventType = "info"
	EventTypeWarning EventType = "warning"
)

// Operation names recorded on store events.
const (
	OpAdd     = "add"
	OpDelete  = "delete"
	OpLoad    = "load"
	OpReload  = "reload"
	OpResolve = "resolve"
)

type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Topic     *int      `json:"topic,omitempty"`
	Image     string    `json:"image,omitempty"`
	Operation string    `json:"operation"`
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
}

type EventFilters struct {
	Topic  *int
	Type   EventType
	Since  time.Time
	Until  time.Time
	Limit  int
	Offset int
}

// DefaultLimit caps list results when the caller gives no limit.
const DefaultLimit = 100

// DefaultBatchSize bounds the number of events removed per cleanup batch.
const DefaultBatchSize = 1000

func ValidEventType(t EventType) bool {
	switch t {
	case EventTypeError, EventTypeSuccess, EventTypeInfo, EventTypeWarning:
		return true
	}
	return false
}
