package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/garunski/codequest/pkg/codequest/asset"
	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
	"github.com/garunski/codequest/pkg/codequest/events"
	"github.com/garunski/codequest/pkg/codequest/store"
)

type Handler struct {
	logger     logr.Logger
	appName    string
	version    string
	store      store.TopicStore
	library    *asset.Library
	eventStore events.EventStorage
}

func NewHandler(topicStore store.TopicStore, library *asset.Library, eventStore events.EventStorage, logger logr.Logger, appName, version string) (*Handler, error) {
	if topicStore == nil {
		return nil, fmt.Errorf("%w: topic store is required", apperrors.ErrInvalid)
	}
	if appName == "" {
		appName = "CodeQuest"
	}

	return &Handler{
		logger:     logger,
		appName:    appName,
		version:    version,
		store:      topicStore,
		library:    library,
		eventStore: eventStore,
	}, nil
}

func (h *Handler) parseJSONRequest(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		if syntaxErr, ok := err.(*json.SyntaxError); ok {
			return fmt.Errorf("%w: invalid request body: JSON syntax error at position %d: %w", apperrors.ErrInvalidRequest, syntaxErr.Offset, syntaxErr)
		}
		if unmarshalTypeErr, ok := err.(*json.UnmarshalTypeError); ok {
			return fmt.Errorf("%w: invalid request body: JSON type error for field %s: expected %s, got %s", apperrors.ErrInvalidRequest, unmarshalTypeErr.Field, unmarshalTypeErr.Type, unmarshalTypeErr.Value)
		}
		return fmt.Errorf("%w: invalid request body: %w", apperrors.ErrInvalidRequest, err)
	}
	return nil
}
