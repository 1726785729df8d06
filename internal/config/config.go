// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"9999"`

	// Document store (PostgreSQL)
	DBHost            string `env:"DB_HOST" envDefault:"localhost"`
	DBPort            int    `env:"DB_PORT" envDefault:"5432"`
	DBUser            string `env:"DB_USER" envDefault:"postgres"`
	DBPassword        string `env:"DB_PASSWORD" envDefault:""`
	DBName            string `env:"DB_NAME" envDefault:"contactTracing"`
	DBMaintenanceName string `env:"DB_MAINTENANCE_NAME" envDefault:"postgres"`
	DBSSLMode         string `env:"DB_SSLMODE" envDefault:"disable"`

	// Tables created at startup, keyed by id.
	DBTables []string `env:"DB_TABLES" envSeparator:"," envDefault:"adminEntries,userEntries,trackingEntries"`

	// Pool bounds
	DBMaxConns          int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBOperationTimeout  time.Duration `env:"DB_OPERATION_TIMEOUT" envDefault:"5s"`

	// Cache (Redis). Rate limiting is disabled when empty.
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting (per client IP)
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst   int  `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com").
	// "*" admits any origin, which the browser check-in frontends rely on.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// RequiredTables are the document tables the API reads and writes.
// DB_TABLES may add tables but must keep these.
var RequiredTables = []string{"adminEntries", "userEntries", "trackingEntries"}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// DatabaseURL builds the connection URL for the application database.
func (c *Config) DatabaseURL() string {
	return c.databaseURL(c.DBName)
}

// MaintenanceURL builds the connection URL used to create the application
// database when it does not exist yet.
func (c *Config) MaintenanceURL() string {
	return c.databaseURL(c.DBMaintenanceName)
}

func (c *Config) databaseURL(name string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:   "/" + name,
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}

	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME must not be empty")
	}
	if len(c.DBTables) == 0 {
		return fmt.Errorf("DB_TABLES must list at least one table")
	}
	for _, required := range RequiredTables {
		if !slices.Contains(c.DBTables, required) {
			return fmt.Errorf("DB_TABLES must include %q", required)
		}
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.RateLimitEnabled && c.RedisURL != "" && (c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0) {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// Load parses environment variables and returns a Config.
// Returns an error if a variable cannot be parsed or the result is inconsistent.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
