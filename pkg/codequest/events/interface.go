package events

import "time"

// EventStorage records store outcomes so operators can see what the
// presentation layer asked for and what happened.
type EventStorage interface {
	StoreEvent(event Event) error
	StoreEventsBatch(events []Event) error
	ListEvents(filters EventFilters) ([]Event, error)
	GetEventsByTopic(topic int, limit int) ([]Event, error)
	GetRecentErrors(limit int) ([]Event, error)
	CleanupOldEvents(before time.Time) (int, error)
	DeleteEvent(event Event) error
}

var _ EventStorage = (*Storage)(nil)
