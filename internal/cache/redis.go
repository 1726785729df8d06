// Package cache holds the Redis client used to throttle clients and to
// report Redis readiness.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "contacttrace:"

// Cache wraps a Redis client together with the key namespace it owns.
type Cache struct {
	client    *redis.Client
	logger    *slog.Logger
	keyPrefix string
}

// Option customizes a Cache.
type Option func(*Cache)

// WithLogger sets the logger used to report degraded Redis calls.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithKeyPrefix namespaces every key written by the Cache.
func WithKeyPrefix(prefix string) Option {
	return func(c *Cache) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// New connects to redisURL and fails if the server does not answer a PING.
func New(ctx context.Context, redisURL string, opts ...Option) (*Cache, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// The limiter issues one short script per request.
	redisOpts.PoolSize = 10
	redisOpts.MinIdleConns = 2
	redisOpts.PoolTimeout = 2 * time.Second
	redisOpts.ReadTimeout = 500 * time.Millisecond
	redisOpts.WriteTimeout = 500 * time.Millisecond

	c := NewWithClient(redis.NewClient(redisOpts), opts...)
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return c, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, opts ...Option) *Cache {
	c := &Cache{
		client:    client,
		logger:    slog.Default(),
		keyPrefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping implements the readiness check.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the raw client for test fixtures.
func (c *Cache) Client() *redis.Client {
	return c.client
}

func (c *Cache) key(parts ...string) string {
	k := c.keyPrefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}
