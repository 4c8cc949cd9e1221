package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamnova/streamnova/internal/config"
)

// DefaultTTL applies when the configured TTL is missing or invalid.
const DefaultTTL = time.Hour

// Options configures a page cache backend.
type Options struct {
	Size int
	TTL  time.Duration

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// onEvict is installed by New to count evictions.
	onEvict func(key string)

	Logger zerolog.Logger
}

// OptionsFromConfig translates the cache section of the configuration.
func OptionsFromConfig(cfg config.CacheConfig) Options {
	size := cfg.Size
	if size <= 0 {
		size = 256
	}
	return Options{
		Size:          size,
		TTL:           config.ParseDuration(cfg.TTL, DefaultTTL),
		RedisAddress:  cfg.Redis.Address,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		Logger:        config.GetLogger(),
	}
}

// Backend builds a page cache from options.
type Backend func(opts Options) (PageCache, error)

var (
	mu       sync.RWMutex
	backends = make(map[string]Backend)
)

// Register makes a backend available under name. It panics on duplicates.
func Register(name string, b Backend) {
	mu.Lock()
	defer mu.Unlock()

	if b == nil {
		panic("cache: Register backend is nil")
	}
	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("cache: backend %q already registered", name))
	}
	backends[name] = b
}

// New creates the named backend and wraps it with metrics labelled by group.
func New(name, group string, opts Options) (PageCache, error) {
	mu.RLock()
	b, ok := backends[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown backend %q (registered: %v)", name, Backends())
	}

	opts.onEvict = func(string) {
		EvictionsTotal.WithLabelValues(group).Inc()
	}

	inner, err := b(opts)
	if err != nil {
		return nil, err
	}
	return newInstrumented(inner, group), nil
}

// FromConfig creates the configured page cache.
func FromConfig(cfg config.CacheConfig, group string) (PageCache, error) {
	return New(cfg.Provider, group, OptionsFromConfig(cfg))
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
