package handler

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/contacttrace/contacttrace/internal/metrics"
	"github.com/contacttrace/contacttrace/internal/middleware"
)

// RouterConfig carries everything the route table needs.
type RouterConfig struct {
	Store        Store
	Metrics      metrics.Recorder
	Snapshotter  metrics.Snapshotter
	Health       *HealthHandler
	Logger       *slog.Logger
	CORS         middleware.CORSConfig
	RateLimit    middleware.RateLimitConfig
	IsDev        bool
	MaxBodyBytes int64
}

// NewRouter builds the explicit route table of the API.
func NewRouter(cfg RouterConfig) *chi.Mux {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RateLimit.Logger == nil {
		cfg.RateLimit.Logger = cfg.Logger
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	if cfg.Health == nil {
		cfg.Health = NewHealthHandler()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	h := New()
	admins := NewAdminHandler(cfg.Store, cfg.Metrics, cfg.Logger)
	entries := NewEntryHandler(cfg.Store, cfg.Metrics, cfg.Logger)
	tracking := NewTrackingHandler(cfg.Store, cfg.Metrics, cfg.Logger)
	metricsHandler := NewMetricsHandler(cfg.Snapshotter)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Security(cfg.IsDev))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimiddleware.StripSlashes)

	// Probes and metrics are exempt from rate limiting.
	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitIP(cfg.RateLimit))
		r.Use(middleware.MaxBodySize(cfg.MaxBodyBytes))

		r.Route("/admins", func(r chi.Router) {
			r.Get("/", admins.List)
			r.Post("/", admins.Create)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", entries.List)
			r.Post("/", entries.Create)
			r.Delete("/", entries.DeleteAll)
			r.Delete("/{id}", entries.Delete)
		})

		r.Route("/tracking", func(r chi.Router) {
			r.Get("/", tracking.List)
			r.Post("/", tracking.CheckIn)
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
