package api

import (
	"net/http"
	"os"
	"time"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	WriteJSONResponse(w, h.logger, http.StatusOK, HealthStatus{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now(),
	})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:     "healthy",
		Version:    h.version,
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentStatus),
	}

	if h.library != nil {
		if info, err := os.Stat(h.library.BaseDir()); err != nil || !info.IsDir() {
			status.Components["images"] = ComponentStatus{
				Status:  "unavailable",
				Message: "image directory not readable",
			}
			status.Status = "unhealthy"
		} else {
			status.Components["images"] = ComponentStatus{Status: "available"}
		}
	}

	status.Components["topics"] = ComponentStatus{Status: "ready"}

	if h.eventStore != nil {
		if _, err := h.eventStore.GetRecentErrors(1); err != nil {
			status.Components["eventStore"] = ComponentStatus{
				Status:  "unavailable",
				Message: err.Error(),
			}
		} else {
			status.Components["eventStore"] = ComponentStatus{Status: "available"}
		}
	} else {
		status.Components["eventStore"] = ComponentStatus{
			Status:  "unavailable",
			Message: "Event store not initialized",
		}
	}

	statusCode := http.StatusOK
	if status.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	WriteJSONResponse(w, h.logger, statusCode, status)
}
