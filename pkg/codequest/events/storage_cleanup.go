package events

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
)

// CleanupOldEvents removes events older than before together with their index
// entries and returns how many events were removed.
func (s *Storage) CleanupOldEvents(before time.Time) (int, error) {
	items, err := s.db.List(prefixAll)
	if err != nil {
		return 0, fmt.Errorf("%w: list events for cleanup: %w", apperrors.ErrEventStore, err)
	}

	var keys []string
	removed := 0
	for key, data := range items {
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			// unreadable record: drop the primary key, its index keys are unknown
			keys = append(keys, key)
			removed++
			continue
		}
		if event.Timestamp.Before(before) {
			keys = append(keys, keysFor(event)...)
			removed++
		}
	}

	for i := 0; i < len(keys); i += DefaultBatchSize {
		end := i + DefaultBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		if err := s.db.BatchDelete(keys[i:end]); err != nil {
			return 0, fmt.Errorf("%w: cleanup batch: %w", apperrors.ErrEventStore, err)
		}
	}

	s.logger.Info("Cleaned up old events", "deleted", removed, "before", before)
	return removed, nil
}
