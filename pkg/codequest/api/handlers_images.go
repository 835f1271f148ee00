package api

import (
	"fmt"
	"net/http"

	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
)

func (h *Handler) ImageExists(w http.ResponseWriter, r *http.Request) {
	name, err := imageParam(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := ValidateAssetPath(name); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, h.logger, http.StatusOK, ImageExistsResponse{
		Name:   name,
		Exists: h.store.ImageExists(name),
	})
}

// ServeImage streams the asset so a remote presentation layer can render it.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	name, err := imageParam(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := ValidateAssetPath(name); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if h.library == nil || !h.library.Exists(name) {
		WriteError(w, h.logger, fmt.Errorf("%w: image %s", apperrors.ErrNotFound, name))
		return
	}

	http.ServeFile(w, r, h.library.Path(name))
}
