package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis tests need a running Redis or Valkey server. Set REDIS_ADDRESS
// (e.g. "localhost:6379") to enable them; database 15 is flushed.

func newTestRedisCache(t *testing.T, size int, ttl time.Duration, onEvict func(string)) PageCache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("Skipping Redis tests: set REDIS_ADDRESS to enable")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush Redis test DB: %v", err)
	}
	_ = client.Close()

	c, err := newRedisCache(Options{Size: size, TTL: ttl, RedisAddress: addr, RedisDB: 15, onEvict: onEvict})
	if err != nil {
		t.Fatalf("newRedisCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache_GetPut(t *testing.T) {
	c := newTestRedisCache(t, 10, time.Minute, nil)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "https://example.com/anime/"); ok {
		t.Fatal("Expected miss on empty cache")
	}

	c.Put(ctx, "https://example.com/anime/", []byte("<html></html>"))

	body, ok := c.Get(ctx, "https://example.com/anime/")
	if !ok || string(body) != "<html></html>" {
		t.Fatalf("Expected stored body, got %q (%v)", body, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 page, got %d", c.Len())
	}
}

func TestRedisCache_Trim(t *testing.T) {
	var evicted []string
	c := newTestRedisCache(t, 2, time.Minute, func(key string) { evicted = append(evicted, key) })
	ctx := context.Background()

	c.Put(ctx, "a", []byte("1"))
	time.Sleep(5 * time.Millisecond)
	c.Put(ctx, "b", []byte("2"))
	time.Sleep(5 * time.Millisecond)
	c.Put(ctx, "c", []byte("3"))

	if _, ok := c.Get(ctx, "a"); ok {
		t.Error("Expected the oldest page to be trimmed")
	}
	if len(evicted) != 1 || evicted[0] != keyPrefix+PageKey("a") {
		t.Errorf("Unexpected evictions %v", evicted)
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 pages, got %d", c.Len())
	}
}

func TestRedisCache_Expiry(t *testing.T) {
	c := newTestRedisCache(t, 10, 100*time.Millisecond, nil)
	ctx := context.Background()

	c.Put(ctx, "u", []byte("body"))
	time.Sleep(250 * time.Millisecond)

	if _, ok := c.Get(ctx, "u"); ok {
		t.Error("Expected page to expire")
	}
	if c.Len() != 0 {
		t.Errorf("Expected expired pages to be excluded from Len, got %d", c.Len())
	}
}
