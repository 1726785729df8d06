package handler

import (
	"log/slog"
	"net/http"

	"github.com/contacttrace/contacttrace/internal/metrics"
	"github.com/contacttrace/contacttrace/internal/middleware"
	"github.com/contacttrace/contacttrace/internal/model"
)

// AdminHandler serves /admins.
type AdminHandler struct {
	store   AdminStore
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(store AdminStore, rec metrics.Recorder, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{store: store, metrics: rec, logger: logger}
}

// List handles GET /admins.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.store.GetAllAdmins(r.Context())
	if err != nil {
		storeFailed(w, r, h.logger, h.metrics, "failed to list admins", err)
		return
	}
	writeJSON(w, http.StatusOK, admins)
}

// Create handles POST /admins.
// Duplicate emails are accepted and the password is stored as sent.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.AdminEntry
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := middleware.ValidateAdminEmail(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_EMAIL", err.Error())
		return
	}

	admin, err := h.store.AddAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		storeFailed(w, r, h.logger, h.metrics, "failed to add admin", err)
		return
	}

	h.metrics.IncAdminCreated()
	h.logger.Info("admin_created", slog.String("request_id", middleware.GetRequestID(r.Context())))

	writeJSON(w, http.StatusCreated, admin)
}
