package cache

import (
	"log/slog"
	"time"
)

// Backend names reported by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set.
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for the memory cache (0 = unlimited).
	MaxSize int

	CleanupInterval time.Duration
}

// New creates a Redis cache when RedisURL is set and reachable, and an
// in-memory cache otherwise. The returned string names the backend in use.
func New(cfg Config) (Cache, string) {
	if cfg.RedisURL != "" {
		opts := RedisCacheOptions{URL: cfg.RedisURL, Prefix: cfg.Prefix, DefaultTTL: cfg.DefaultTTL}
		rc, err := NewRedisCache(opts)
		if err == nil {
			return rc, BackendRedis
		}
		slog.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = time.Minute
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	}), BackendMemory
}
