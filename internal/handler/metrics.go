package handler

import (
	"fmt"
	"net/http"

	"github.com/contacttrace/contacttrace/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns counters in Prometheus text exposition format.
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	counters := []struct {
		name  string
		help  string
		value uint64
	}{
		{"contacttrace_admins_created_total", "Admins stored.", snap.AdminsCreated},
		{"contacttrace_entries_created_total", "Visitor entries stored.", snap.EntriesCreated},
		{"contacttrace_entries_deleted_total", "Single visitor entry deletions.", snap.EntriesDeleted},
		{"contacttrace_entries_cleared_total", "Bulk visitor entry deletions.", snap.EntriesCleared},
		{"contacttrace_checkins_total", "Check-ins recorded.", snap.CheckIns},
		{"contacttrace_store_errors_total", "Persistence failures returned to clients.", snap.StoreErrors},
	}

	for _, c := range counters {
		_, _ = fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", c.name, c.help, c.name, c.name, c.value)
	}
}
