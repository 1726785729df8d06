package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/contacttrace/contacttrace/internal/metrics"
	"github.com/contacttrace/contacttrace/internal/middleware"
	"github.com/contacttrace/contacttrace/internal/model"
	"github.com/contacttrace/contacttrace/internal/repository"
)

// EntryHandler serves /entries.
type EntryHandler struct {
	store   EntryStore
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(store EntryStore, rec metrics.Recorder, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{store: store, metrics: rec, logger: logger}
}

// List handles GET /entries.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.GetAllEntries(r.Context())
	if err != nil {
		storeFailed(w, r, h.logger, h.metrics, "failed to list entries", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Create handles POST /entries.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var entry model.UserEntry
	if !decodeJSON(w, r, &entry) {
		return
	}

	if err := middleware.ValidateDocumentID(entry.ID); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	if err := h.store.AddEntry(r.Context(), &entry); err != nil {
		if errors.Is(err, repository.ErrEntryExists) {
			writeError(w, http.StatusConflict, "ENTRY_EXISTS", "An entry with this id already exists")
			return
		}
		storeFailed(w, r, h.logger, h.metrics, "failed to add entry", err)
		return
	}

	h.metrics.IncEntryCreated()
	h.logger.Info("entry_created", slog.String("entry_id", entry.ID))

	writeJSON(w, http.StatusCreated, entry)
}

// DeleteAll handles DELETE /entries.
func (h *EntryHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteAllEntries(r.Context()); err != nil {
		storeFailed(w, r, h.logger, h.metrics, "failed to delete entries", err)
		return
	}

	h.metrics.IncEntriesCleared()
	h.logger.Info("entries_cleared", slog.String("request_id", middleware.GetRequestID(r.Context())))

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /entries/{id}. An unknown id still yields 204.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Entry ID is required")
		return
	}

	if err := h.store.DeleteEntry(r.Context(), id); err != nil {
		storeFailed(w, r, h.logger, h.metrics, "failed to delete entry", err)
		return
	}

	h.metrics.IncEntryDeleted()
	h.logger.Info("entry_deleted", slog.String("entry_id", id))

	w.WriteHeader(http.StatusNoContent)
}
