package api

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
	"github.com/garunski/codequest/pkg/codequest/events"
)

const maxImageNameLength = 255

func parseTopic(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "topic")
	topic, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: topic must be an integer, got %q", apperrors.ErrInvalidTopic, raw)
	}
	return topic, nil
}

// imageParam returns the decoded {name} path segment. chi routes on RawPath
// when the request carried escapes such as %2F, leaving the segment encoded.
func imageParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return raw, nil
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: malformed image name %q: %w", apperrors.ErrInvalidParameter, raw, err)
	}
	return name, nil
}

// ValidateImageName accepts names that can be stored as a manifest line.
// Names are otherwise kept verbatim; no trimming or case folding.
func ValidateImageName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: image name cannot be empty", apperrors.ErrInvalid)
	}
	if len(name) > maxImageNameLength {
		return fmt.Errorf("%w: image name must be %d characters or less", apperrors.ErrInvalid, maxImageNameLength)
	}
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: image name cannot contain line breaks", apperrors.ErrInvalid)
	}
	return nil
}

// ValidateAssetPath additionally refuses names that would leave the image directory.
func ValidateAssetPath(name string) error {
	if err := ValidateImageName(name); err != nil {
		return err
	}
	if !filepath.IsLocal(name) {
		return fmt.Errorf("%w: image name must stay inside the image directory", apperrors.ErrInvalid)
	}
	return nil
}

func ParseEventQueryParams(query url.Values) (events.EventFilters, error) {
	filters := events.EventFilters{Limit: events.DefaultLimit}

	if topicStr := query.Get("topic"); topicStr != "" {
		topic, err := strconv.Atoi(topicStr)
		if err != nil {
			return filters, fmt.Errorf("%w: topic must be an integer", apperrors.ErrInvalidParameter)
		}
		filters.Topic = &topic
	}

	if typeStr := query.Get("type"); typeStr != "" {
		eventType := events.EventType(typeStr)
		if !events.ValidEventType(eventType) {
			return filters, fmt.Errorf("%w: invalid event type: %s (must be one of: error, success, info, warning)", apperrors.ErrInvalidParameter, typeStr)
		}
		filters.Type = eventType
	}

	if sinceStr := query.Get("since"); sinceStr != "" {
		t, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return filters, fmt.Errorf("%w: invalid since parameter format (use RFC3339): %w", apperrors.ErrInvalidParameter, err)
		}
		filters.Since = t
	}

	if untilStr := query.Get("until"); untilStr != "" {
		t, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			return filters, fmt.Errorf("%w: invalid until parameter format (use RFC3339): %w", apperrors.ErrInvalidParameter, err)
		}
		filters.Until = t
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := parseLimit(limitStr)
		if err != nil {
			return filters, err
		}
		filters.Limit = limit
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return filters, fmt.Errorf("%w: offset must be a non-negative integer", apperrors.ErrInvalidParameter)
		}
		filters.Offset = offset
	}

	return filters, nil
}

func parseLimit(limitStr string) (int, error) {
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", apperrors.ErrInvalidParameter)
	}
	if limit > MaxEventLimit {
		return 0, fmt.Errorf("%w: limit cannot exceed %d", apperrors.ErrInvalidParameter, MaxEventLimit)
	}
	return limit, nil
}
