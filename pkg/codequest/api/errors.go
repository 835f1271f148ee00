package api

import (
	"errors"
	"net/http"

	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
)

// errorMapping is checked in order; the first matching sentinel wins.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
	{apperrors.ErrDuplicate, http.StatusConflict, "duplicate"},
	{apperrors.ErrInvalidAsset, http.StatusUnprocessableEntity, "invalid_asset"},
	{apperrors.ErrInvalidTopic, http.StatusBadRequest, "invalid_topic"},
	{apperrors.ErrMissingParameter, http.StatusBadRequest, "missing_parameter"},
	{apperrors.ErrInvalidParameter, http.StatusBadRequest, "invalid_parameter"},
	{apperrors.ErrInvalidRequest, http.StatusBadRequest, "invalid_request"},
	{apperrors.ErrInvalid, http.StatusBadRequest, "validation_error"},
	{apperrors.ErrAssetResolution, http.StatusInternalServerError, "asset_resolution_error"},
	{apperrors.ErrStorage, http.StatusInternalServerError, "storage_error"},
	{apperrors.ErrEventStore, http.StatusServiceUnavailable, "event_store_unavailable"},
}

func httpStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

func extractErrorCode(err error) string {
	if err == nil {
		return "unknown_error"
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return m.code
		}
	}
	return "internal_error"
}
