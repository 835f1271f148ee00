package events

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/garunski/codequest/pkg/codequest/database"
	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
)

type Storage struct {
	db     *database.DB
	logger logr.Logger
}

func NewStorage(db *database.DB, logger logr.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

func prepare(event Event) Event {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return event
}

func (s *Storage) StoreEvent(event Event) error {
	event = prepare(event)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %w", apperrors.ErrEventStore, err)
	}

	keys := keysFor(event)
	if err := s.db.Set(keys[0], data); err != nil {
		return fmt.Errorf("%w: store event: %w", apperrors.ErrEventStore, err)
	}

	for _, key := range keys[1:] {
		if err := s.db.Set(key, data); err != nil {
			s.logger.Error(err, "failed to store event index", "key", key)
		}
	}

	return nil
}

func (s *Storage) StoreEventsBatch(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	batchItems := make(map[string][]byte)
	for _, event := range events {
		event = prepare(event)

		data, err := json.Marshal(event)
		if err != nil {
			s.logger.Error(err, "failed to marshal event in batch", "eventID", event.ID)
			continue
		}
		for _, key := range keysFor(event) {
			batchItems[key] = data
		}
	}

	if err := s.db.BatchSet(batchItems); err != nil {
		return fmt.Errorf("%w: store events batch: %w", apperrors.ErrEventStore, err)
	}
	return nil
}

func (s *Storage) ListEvents(filters EventFilters) ([]Event, error) {
	prefix := prefixAll
	switch {
	case filters.Topic != nil:
		prefix = topicPrefix(*filters.Topic)
	case filters.Type != "":
		prefix = typePrefix(filters.Type)
	}

	items, err := s.db.List(prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: list events: %w", apperrors.ErrEventStore, err)
	}

	events := make([]Event, 0, len(items))
	for key, data := range items {
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			s.logger.Error(err, "failed to unmarshal event", "key", key)
			continue
		}
		if !matches(event, filters) {
			continue
		}
		events = append(events, event)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	return paginate(events, filters.Offset, filters.Limit), nil
}

func matches(event Event, filters EventFilters) bool {
	if filters.Topic != nil && (event.Topic == nil || *event.Topic != *filters.Topic) {
		return false
	}
	if filters.Type != "" && event.Type != filters.Type {
		return false
	}
	if !filters.Since.IsZero() && event.Timestamp.Before(filters.Since) {
		return false
	}
	if !filters.Until.IsZero() && event.Timestamp.After(filters.Until) {
		return false
	}
	return true
}

func paginate(events []Event, offset, limit int) []Event {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(events) {
		return []Event{}
	}
	events = events[offset:]

	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events
}

func (s *Storage) GetEventsByTopic(topic int, limit int) ([]Event, error) {
	return s.ListEvents(EventFilters{Topic: &topic, Limit: limit})
}

func (s *Storage) GetRecentErrors(limit int) ([]Event, error) {
	return s.ListEvents(EventFilters{Type: EventTypeError, Limit: limit})
}

func (s *Storage) DeleteEvent(event Event) error {
	if err := s.db.BatchDelete(keysFor(event)); err != nil {
		return fmt.Errorf("%w: delete event %s: %w", apperrors.ErrEventStore, event.ID, err)
	}
	return nil
}
