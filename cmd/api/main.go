// Package main is the entrypoint for the contact-tracing API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/contacttrace/contacttrace/internal/cache"
	"github.com/contacttrace/contacttrace/internal/config"
	"github.com/contacttrace/contacttrace/internal/handler"
	"github.com/contacttrace/contacttrace/internal/metrics"
	"github.com/contacttrace/contacttrace/internal/middleware"
	"github.com/contacttrace/contacttrace/internal/repository"
	"github.com/contacttrace/contacttrace/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, repository.Options{
		DatabaseURL:       cfg.DatabaseURL(),
		MaintenanceURL:    cfg.MaintenanceURL(),
		DatabaseName:      cfg.DBName,
		Tables:            cfg.DBTables,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
		OperationTimeout:  cfg.DBOperationTimeout,
		Logger:            logger,
	})
	if err != nil {
		logger.Error(
			"failed to configure database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL())),
			slog.String("database_url", redactURL(cfg.DatabaseURL())),
		)
		os.Exit(1)
	}

	if err := repo.Initialize(ctx); err != nil {
		logger.Error(
			"failed to initialize database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL(), cfg.MaintenanceURL())),
			slog.String("database_url", redactURL(cfg.DatabaseURL())),
		)
		repo.Close()
		os.Exit(1)
	}
	logger.Info("database ready", "database", cfg.DBName, "tables", cfg.DBTables)

	// Redis is optional: without it requests are not rate limited.
	var (
		limiter     middleware.IPRateLimiter
		redisHealth handler.HealthChecker
		cacheClient *cache.Cache
	)
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL, cache.WithLogger(logger))
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			repo.Close()
			os.Exit(1)
		}
		limiter = cacheClient
		redisHealth = cacheClient
		logger.Info("connected to Redis")
	} else {
		logger.Warn("REDIS_URL not set, rate limiting disabled")
	}

	recorder := metrics.NewInMemory()

	corsCfg := middleware.DefaultCORSConfig()
	if origins := cfg.GetCORSAllowedOrigins(); origins != nil {
		corsCfg.AllowedOrigins = origins
	}

	router := handler.NewRouter(handler.RouterConfig{
		Store:       repo,
		Metrics:     recorder,
		Snapshotter: recorder,
		Health: handler.NewHealthHandler(
			handler.Dependency{Name: "postgres", Checker: repo},
			handler.Dependency{Name: "redis", Checker: redisHealth},
		),
		Logger: logger,
		CORS:   corsCfg,
		RateLimit: middleware.RateLimitConfig{
			Logger:  logger,
			Limiter: limiter,
			Enabled: cfg.RateLimitEnabled,
			RPS:     cfg.RateLimitRPS,
			Burst:   cfg.RateLimitBurst,
		},
		IsDev:        cfg.IsDevelopment(),
		MaxBodyBytes: cfg.MaxRequestBodySize,
	})

	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          logger,
	})
	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL strips the password from a connection URL before logging it.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		if username := parsed.User.Username(); username != "" {
			parsed.User = url.User(username)
		} else {
			parsed.User = url.User("redacted")
		}
	}

	return parsed.String()
}

// sanitizeError replaces any connection URL embedded in err with its redacted form.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		msg = strings.ReplaceAll(msg, secret, redactURL(secret))
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
