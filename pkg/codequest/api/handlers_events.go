package api

import (
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
)

func (h *Handler) requireEventStore(w http.ResponseWriter) bool {
	if h.eventStore == nil {
		WriteError(w, h.logger, fmt.Errorf("%w: event store not available", apperrors.ErrEventStore))
		return false
	}
	return true
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	if !h.requireEventStore(w) {
		return
	}

	filters, err := ParseEventQueryParams(r.URL.Query())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	eventList, err := h.eventStore.ListEvents(filters)
	if err != nil {
		h.logger.Error(err, "failed to list events")
		WriteError(w, h.logger, err)
		return
	}
	WriteJSONResponse(w, h.logger, http.StatusOK, eventList)
}

func (h *Handler) GetEventsByTopic(w http.ResponseWriter, r *http.Request) {
	if !h.requireEventStore(w) {
		return
	}

	topic, err := parseTopic(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err = parseLimit(limitStr); err != nil {
			WriteError(w, h.logger, err)
			return
		}
	}

	eventList, err := h.eventStore.GetEventsByTopic(topic, limit)
	if err != nil {
		h.logger.Error(err, "failed to get events by topic", "topic", topic)
		WriteError(w, h.logger, err)
		return
	}
	WriteJSONResponse(w, h.logger, http.StatusOK, eventList)
}

func (h *Handler) GetRecentErrors(w http.ResponseWriter, r *http.Request) {
	if !h.requireEventStore(w) {
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		if limit, err = parseLimit(limitStr); err != nil {
			WriteError(w, h.logger, err)
			return
		}
	}

	eventList, err := h.eventStore.GetRecentErrors(limit)
	if err != nil {
		h.logger.Error(err, "failed to get recent errors")
		WriteError(w, h.logger, err)
		return
	}
	WriteJSONResponse(w, h.logger, http.StatusOK, eventList)
}

func (h *Handler) CleanupEvents(w http.ResponseWriter, r *http.Request) {
	beforeStr := r.URL.Query().Get("before")
	if beforeStr == "" {
		WriteError(w, h.logger, fmt.Errorf("%w: before parameter is required", apperrors.ErrMissingParameter))
		return
	}

	before, err := time.Parse(time.RFC3339, beforeStr)
	if err != nil {
		WriteError(w, h.logger, fmt.Errorf("%w: invalid before parameter format (use RFC3339): %w", apperrors.ErrInvalidParameter, err))
		return
	}

	if !h.requireEventStore(w) {
		return
	}

	removed, err := h.eventStore.CleanupOldEvents(before)
	if err != nil {
		h.logger.Error(err, "failed to cleanup events")
		WriteError(w, h.logger, err)
		return
	}
	WriteJSONResponse(w, h.logger, http.StatusOK, map[string]int{"removed": removed})
}
