package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitResult describes one admission decision.
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// ipBucketScript keeps a token bucket per key in a hash. Time comes from the
// Redis server so every API instance refills against the same clock.
//
// KEYS[1] bucket key
// ARGV[1] refill rate, tokens per second
// ARGV[2] capacity
// Returns {allowed, retry_after_ms, tokens_left}.
var ipBucketScript = redis.NewScript(`
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])

local t = redis.call('TIME')
local now_ms = t[1] * 1000 + math.floor(t[2] / 1000)

local state = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(state[1]) or capacity
local ts = tonumber(state[2]) or now_ms

if now_ms > ts then
  tokens = math.min(capacity, tokens + (now_ms - ts) * rate / 1000)
end

local allowed = 0
local wait_ms = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  wait_ms = math.ceil((1 - tokens) * 1000 / rate)
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', now_ms)
redis.call('PEXPIRE', KEYS[1], math.ceil(capacity * 1000 / rate) + 1000)

return {allowed, wait_ms, math.floor(tokens)}
`)

// CheckIPRateLimit consumes one token from the bucket of ip.
// Redis failures admit the request so the API stays available.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*RateLimitResult, error) {
	now := time.Now()
	if ratePerSecond <= 0 || burst <= 0 {
		return failOpen(burst, now), nil
	}

	res, err := ipBucketScript.Run(ctx, c.client,
		[]string{c.key("ratelimit", "ip", hashIP(ip))},
		ratePerSecond, burst,
	).Int64Slice()
	if err != nil || len(res) != 3 {
		c.logger.WarnContext(ctx, "rate limiter unavailable, admitting request",
			slog.Any("error", err),
		)
		return failOpen(burst, now), nil
	}

	retryAfter := time.Duration(res[1]) * time.Millisecond
	resetAt := now.Add(time.Second / time.Duration(ratePerSecond))
	if retryAfter > 0 {
		resetAt = now.Add(retryAfter)
	}

	return &RateLimitResult{
		Allowed:    res[0] == 1,
		Limit:      burst,
		Remaining:  res[2],
		ResetAt:    resetAt,
		RetryAfter: retryAfter,
	}, nil
}

func failOpen(burst int, now time.Time) *RateLimitResult {
	return &RateLimitResult{
		Allowed:   true,
		Limit:     burst,
		Remaining: int64(burst),
		ResetAt:   now.Add(time.Second),
	}
}

// hashIP keys buckets by a short digest so raw client addresses are not stored.
func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return fmt.Sprintf("%x", sum[:8])
}
