// Package repository provides the persistence gateway for tracing records.
//
// Every entity lives in its own table of JSONB documents keyed by id.
// Table and database names are configurable and created on demand by
// Initialize.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// Default table names.
const (
	TableAdmins   = "adminEntries"
	TableEntries  = "userEntries"
	TableTracking = "trackingEntries"
)

// DefaultTables lists the tables created when Options.Tables is empty.
var DefaultTables = []string{TableAdmins, TableEntries, TableTracking}

// PostgreSQL error codes handled explicitly.
const (
	codeUniqueViolation   = "23505"
	codeDuplicateDatabase = "42P04"
)

// Options configures a Repository.
type Options struct {
	// DatabaseURL points at the application database.
	DatabaseURL string
	// MaintenanceURL points at a database that always exists
	// and is used to create the application database.
	MaintenanceURL string
	// DatabaseName is the application database created by Initialize.
	DatabaseName string
	// Tables are created by Initialize, each keyed by id.
	Tables []string

	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	HealthCheckPeriod time.Duration

	// OperationTimeout bounds every single store call. Zero disables it.
	OperationTimeout time.Duration

	Logger *slog.Logger
}

// Repository provides database access methods.
type Repository struct {
	pool           *pgxpool.Pool
	logger         *slog.Logger
	maintenanceURL string
	databaseName   string
	tables         []string
	opTimeout      time.Duration
}

// New creates a new Repository with a bounded connection pool.
// The pool connects lazily; call Initialize before serving traffic.
func New(ctx context.Context, opts Options) (*Repository, error) {
	config, err := pgxpool.ParseConfig(opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 && opts.MinConns <= config.MaxConns {
		config.MinConns = opts.MinConns
	}
	if opts.MaxConnLifetime > 0 {
		config.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.HealthCheckPeriod > 0 {
		config.HealthCheckPeriod = opts.HealthCheckPeriod
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tables := opts.Tables
	if len(tables) == 0 {
		tables = DefaultTables
	}

	databaseName := opts.DatabaseName
	if databaseName == "" {
		databaseName = config.ConnConfig.Database
	}

	return &Repository{
		pool:           pool,
		logger:         logger,
		maintenanceURL: opts.MaintenanceURL,
		databaseName:   databaseName,
		tables:         tables,
		opTimeout:      opts.OperationTimeout,
	}, nil
}

// Initialize ensures the application database and every configured table
// exist. It is idempotent.
//
// Failing to reach or create the database is returned to the caller.
// A table that cannot be created is logged and skipped; Initialize still
// succeeds so the server can start.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.maintenanceURL != "" {
		if err := r.ensureDatabase(ctx); err != nil {
			return err
		}
	}

	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	r.logger.Info("trying to create tables", slog.Int("count", len(r.tables)))

	created := 0
	for _, table := range r.tables {
		if err := r.createTable(ctx, table); err != nil {
			r.logger.Error("failed to create table",
				slog.String("table", table),
				slog.String("error", err.Error()),
			)
			continue
		}
		created++
	}

	r.logger.Info("tables ready", slog.Int("ready", created), slog.Int("configured", len(r.tables)))
	return nil
}

// ensureDatabase creates the application database if it is absent.
func (r *Repository) ensureDatabase(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, r.maintenanceURL)
	if err != nil {
		return fmt.Errorf("failed to connect to maintenance database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`,
		r.databaseName,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE cannot take parameters.
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(r.databaseName)); err != nil {
		// Another instance may have won the race.
		if hasCode(err, codeDuplicateDatabase) {
			return nil
		}
		return fmt.Errorf("failed to create database %q: %w", r.databaseName, err)
	}

	r.logger.Info("database created", slog.String("database", r.databaseName))
	return nil
}

// createTable creates a document table keyed by id if it does not exist.
func (r *Repository) createTable(ctx context.Context, table string) error {
	_, err := r.pool.Exec(ctx, createTableSQL(table))
	if err != nil && !hasCode(err, codeUniqueViolation) {
		// Concurrent CREATE TABLE IF NOT EXISTS can still collide on pg_type.
		return fmt.Errorf("failed to create table %q: %w", table, err)
	}
	return nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// Tables returns the tables managed by Initialize.
func (r *Repository) Tables() []string {
	return r.tables
}

// withTimeout derives the per-operation context.
func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opTimeout)
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id         TEXT PRIMARY KEY,
		doc        JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, pq.QuoteIdentifier(table))
}

// hasCode reports whether err is a PostgreSQL error with the given SQLSTATE.
func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}
