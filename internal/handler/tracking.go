package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/contacttrace/contacttrace/internal/metrics"
	"github.com/contacttrace/contacttrace/internal/middleware"
	"github.com/contacttrace/contacttrace/internal/model"
	"github.com/contacttrace/contacttrace/internal/repository"
)

// TrackingHandler serves /tracking.
type TrackingHandler struct {
	store   TrackingStore
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(store TrackingStore, rec metrics.Recorder, logger *slog.Logger) *TrackingHandler {
	return &TrackingHandler{store: store, metrics: rec, logger: logger}
}

// List handles GET /tracking.
func (h *TrackingHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.GetAllTrackingEntries(r.Context())
	if err != nil {
		storeFailed(w, r, h.logger, h.metrics, "failed to list tracking entries", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// CheckIn handles POST /tracking.
// Only id and name are read from the body; the timestamps are set server side.
func (h *TrackingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req model.CheckInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := middleware.ValidateDocumentID(req.ID); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	entry, err := h.store.CheckIn(r.Context(), req.ID, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrTrackingEntryExists) {
			writeError(w, http.StatusConflict, "TRACKING_ENTRY_EXISTS", "A tracking entry with this id already exists")
			return
		}
		storeFailed(w, r, h.logger, h.metrics, "failed to check in", err)
		return
	}

	h.metrics.IncCheckIn()
	h.logger.Info("checked_in", slog.String("tracking_id", entry.ID))

	writeJSON(w, http.StatusCreated, entry)
}
