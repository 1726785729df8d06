package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestHashIP_Deterministic(t *testing.T) {
	t.Parallel()

	ip := "192.168.1.100"

	if hashIP(ip) != hashIP(ip) {
		t.Error("Same IP should produce same hash")
	}
}

func TestHashIP_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip   string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv6 localhost", "::1"},
		{"IPv6 full", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
		{"empty", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hash := hashIP(tt.ip)
			if len(hash) != 16 {
				t.Errorf("hashIP(%q) length = %d, want 16", tt.ip, len(hash))
			}
			if strings.Contains(hash, tt.ip) && tt.ip != "" {
				t.Errorf("hashIP(%q) leaked the raw address", tt.ip)
			}
		})
	}
}

func TestHashIP_Different(t *testing.T) {
	t.Parallel()

	if hashIP("10.0.0.1") == hashIP("10.0.0.2") {
		t.Error("Different IPs should produce different hashes")
	}
}

func TestCheckIPRateLimit_FailsOpenWhenRedisUnavailable(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewWithClient(client)
	defer c.Close()

	result, err := c.CheckIPRateLimit(context.Background(), "203.0.113.7", 5, 3)
	if err != nil {
		t.Fatalf("expected fail-open without error, got %v", err)
	}
	if !result.Allowed {
		t.Error("expected request to be allowed when Redis is unreachable")
	}
	if result.Limit != 3 || result.Remaining != 3 {
		t.Errorf("unexpected fail-open result: %+v", result)
	}
}

func TestCache_KeyNamespace(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	if got, want := NewWithClient(client).key("ratelimit", "ip", "abc"), "contacttrace:ratelimit:ip:abc"; got != want {
		t.Errorf("default key = %q, want %q", got, want)
	}
	if got, want := NewWithClient(client, WithKeyPrefix("test:")).key("ratelimit"), "test:ratelimit"; got != want {
		t.Errorf("prefixed key = %q, want %q", got, want)
	}
}

func TestCheckIPRateLimit_InvalidLimitsAdmit(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	c := NewWithClient(client)
	defer c.Close()

	result, err := c.CheckIPRateLimit(context.Background(), "198.51.100.1", 0, 5)
	if err != nil || !result.Allowed {
		t.Errorf("zero rate should admit, got %+v, %v", result, err)
	}
}
