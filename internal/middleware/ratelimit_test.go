package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/contacttrace/contacttrace/internal/cache"
)

type fakeLimiter struct {
	result *cache.RateLimitResult
	err    error
	gotIP  string
}

func (f *fakeLimiter) CheckIPRateLimit(ctx context.Context, ip string, rps, burst int) (*cache.RateLimitResult, error) {
	f.gotIP = ip
	return f.result, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateLimitIP(t *testing.T) {
	tests := []struct {
		name       string
		enabled    bool
		limiter    *fakeLimiter
		wantStatus int
		wantRetry  string
	}{
		{
			name:       "disabled passes through",
			enabled:    false,
			limiter:    &fakeLimiter{result: &cache.RateLimitResult{Allowed: false}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "allowed",
			enabled:    true,
			limiter:    &fakeLimiter{result: &cache.RateLimitResult{Allowed: true, Limit: 5, Remaining: 4}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "rejected",
			enabled:    true,
			limiter:    &fakeLimiter{result: &cache.RateLimitResult{Allowed: false, Limit: 5, RetryAfter: 3 * time.Second}},
			wantStatus: http.StatusTooManyRequests,
			wantRetry:  "3",
		},
		{
			name:       "sub-second retry rounds up",
			enabled:    true,
			limiter:    &fakeLimiter{result: &cache.RateLimitResult{Allowed: false, Limit: 5}},
			wantStatus: http.StatusTooManyRequests,
			wantRetry:  "1",
		},
		{
			name:       "limiter error fails open",
			enabled:    true,
			limiter:    &fakeLimiter{err: errors.New("redis down")},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := RateLimitIP(RateLimitConfig{
				Logger:  discardLogger(),
				Limiter: tt.limiter,
				Enabled: tt.enabled,
				RPS:     5,
				Burst:   5,
			})
			handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/tracking", nil)
			req.RemoteAddr = "203.0.113.9:54321"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Retry-After"); got != tt.wantRetry {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetry)
			}
			if tt.enabled && tt.limiter.gotIP != "203.0.113.9" {
				t.Errorf("limiter saw ip %q, want 203.0.113.9", tt.limiter.gotIP)
			}
		})
	}
}
