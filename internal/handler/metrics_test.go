package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/contacttrace/contacttrace/internal/metrics"
)

func TestMetricsHandler(t *testing.T) {
	rec := metrics.NewInMemory()
	rec.IncCheckIn()
	rec.IncCheckIn()
	rec.IncEntryCreated()

	h := NewMetricsHandler(rec)
	resp := httptest.NewRecorder()
	h.Metrics(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	body := resp.Body.String()
	for _, line := range []string{
		"contacttrace_checkins_total 2",
		"contacttrace_entries_created_total 1",
		"contacttrace_store_errors_total 0",
		"# TYPE contacttrace_checkins_total counter",
	} {
		if !strings.Contains(body, line) {
			t.Errorf("expected %q in metrics output:\n%s", line, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)
	resp := httptest.NewRecorder()
	h.Metrics(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.Code)
	}
}
