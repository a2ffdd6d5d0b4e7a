package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis connection defaults applied when RedisCacheOptions leaves them zero.
const (
	defaultRedisPrefix  = "acucogn:"
	defaultRedisTTL     = 5 * time.Minute
	defaultRedisPool    = 10
	defaultDialTimeout  = 5 * time.Second
	defaultIOTimeout    = 3 * time.Second
	clearScanBatchCount = 100
)

// RedisCache stores entries in Redis under a key prefix so several site
// instances share one article cache.
type RedisCache struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
	closed     atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// RedisCacheOptions configures the Redis cache. Zero fields take defaults.
type RedisCacheOptions struct {
	URL         string // redis://host:port/db
	Prefix      string
	DefaultTTL  time.Duration
	PoolSize    int
	DialTimeout time.Duration
	IOTimeout   time.Duration
}

func (o *RedisCacheOptions) applyDefaults() {
	if o.Prefix == "" {
		o.Prefix = defaultRedisPrefix
	}
	if o.DefaultTTL <= 0 {
		o.DefaultTTL = defaultRedisTTL
	}
	if o.PoolSize <= 0 {
		o.PoolSize = defaultRedisPool
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = defaultDialTimeout
	}
	if o.IOTimeout <= 0 {
		o.IOTimeout = defaultIOTimeout
	}
}

// NewRedisCache connects to Redis and pings it.
func NewRedisCache(opts RedisCacheOptions) (*RedisCache, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}
	opts.applyDefaults()

	ro, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	ro.PoolSize = opts.PoolSize
	ro.DialTimeout = opts.DialTimeout
	ro.ReadTimeout = opts.IOTimeout
	ro.WriteTimeout = opts.IOTimeout

	client := redis.NewClient(ro)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCache{client: client, prefix: opts.Prefix, defaultTTL: opts.DefaultTTL}, nil
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}

	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.misses.Add(1)
		return nil, ErrCacheMiss
	case err != nil:
		return nil, err
	}
	c.hits.Add(1)
	return val, nil
}

// Set implements Cache. A zero ttl uses the default.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return err
	}
	c.sets.Add(1)
	return nil
}

// Delete implements Cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	return c.client.Del(ctx, c.prefix+key).Err()
}

// Clear unlinks every key under the prefix. Keys of other applications
// sharing the database are left alone.
func (c *RedisCache) Clear(ctx context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}

	iter := c.client.Scan(ctx, 0, c.prefix+"*", clearScanBatchCount).Iterator()
	batch := make([]string, 0, clearScanBatchCount)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == clearScanBatchCount {
			if err := c.client.Unlink(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return c.client.Unlink(ctx, batch...).Err()
	}
	return nil
}

// Close closes the connection pool.
func (c *RedisCache) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		return c.client.Close()
	}
	return nil
}

// Stats returns this instance's hit and miss counters.
func (c *RedisCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Sets: c.sets.Load()}
}

// Ping is the readiness check for the cache.
func (c *RedisCache) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	return c.client.Ping(ctx).Err()
}

var (
	_ Cache         = (*RedisCache)(nil)
	_ StatsProvider = (*RedisCache)(nil)
)
