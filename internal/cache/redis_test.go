package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := NewRedisCache(RedisCacheOptions{URL: "redis://" + mr.Addr(), Prefix: "test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_Basic(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	if err := c.Set(ctx, "articles", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if !mr.Exists("test:articles") {
		t.Error("key was not written with prefix")
	}

	got, err := c.Get(ctx, "articles")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("Get returned %q, want %q", got, "payload")
	}

	if err := c.Delete(ctx, "articles"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := c.Get(ctx, "articles"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after Delete error = %v, want ErrCacheMiss", err)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	mr.FastForward(2 * time.Second)

	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after expiry error = %v, want ErrCacheMiss", err)
	}
}

func TestRedisCache_ClearOnlyOwnPrefix(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	if err := mr.Set("other:key", "keep"); err != nil {
		t.Fatalf("miniredis Set: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if mr.Exists("test:a") || mr.Exists("test:b") || mr.Exists("test:c") {
		t.Error("prefixed keys survived Clear")
	}
	if !mr.Exists("other:key") {
		t.Error("Clear removed a key outside its prefix")
	}
}

func TestRedisCache_ClearManyKeys(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	for i := range 2*clearScanBatchCount + 7 {
		if err := c.Set(ctx, fmt.Sprintf("articles:id:%d", i), []byte("x"), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n := len(mr.Keys()); n != 0 {
		t.Errorf("%d keys left after Clear", n)
	}
}

func TestRedisCache_DefaultPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(RedisCacheOptions{URL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer func() { _ = c.Close() }()

	if err := c.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists(defaultRedisPrefix + "k") {
		t.Errorf("key not stored under %q", defaultRedisPrefix)
	}
	if ttl := mr.TTL(defaultRedisPrefix + "k"); ttl != defaultRedisTTL {
		t.Errorf("TTL = %v, want %v", ttl, defaultRedisTTL)
	}
}

func TestRedisCache_Closed(t *testing.T) {
	c, _ := newTestRedis(t)
	_ = c.Close()

	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get on closed cache error = %v, want ErrCacheClosed", err)
	}
	if err := c.Ping(context.Background()); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Ping on closed cache error = %v, want ErrCacheClosed", err)
	}
}

func TestNewRedisCache_RequiresURL(t *testing.T) {
	if _, err := NewRedisCache(RedisCacheOptions{}); err == nil {
		t.Error("NewRedisCache() without URL should fail")
	}
}

func TestNew_SelectsBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	c, backend := New(Config{RedisURL: "redis://" + mr.Addr(), DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()
	if backend != BackendRedis {
		t.Errorf("backend = %q, want %q", backend, BackendRedis)
	}

	m, backend := New(Config{DefaultTTL: time.Minute})
	defer func() { _ = m.Close() }()
	if backend != BackendMemory {
		t.Errorf("backend = %q, want %q", backend, BackendMemory)
	}
}

func TestNew_FallsBackWhenRedisUnreachable(t *testing.T) {
	c, backend := New(Config{RedisURL: "redis://127.0.0.1:1", DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()

	if backend != BackendMemory {
		t.Errorf("backend = %q, want fallback to %q", backend, BackendMemory)
	}
}
