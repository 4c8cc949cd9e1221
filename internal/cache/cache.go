// Package cache keeps fetched listing pages for a while so that repeated
// collector runs do not hit the source sites for pages they already have.
package cache

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// PageCache stores response bodies keyed by the page URL.
// Implementations must be safe for concurrent use by collector goroutines.
type PageCache interface {
	// Get returns the cached body of url and whether it was present.
	Get(ctx context.Context, url string) ([]byte, bool)

	// Put stores body for url, replacing any previous value.
	Put(ctx context.Context, url string, body []byte)

	// Len returns the number of cached pages.
	Len() int

	// Close releases backend connections.
	Close() error
}

// PageKey is the backend key for url.
func PageKey(url string) string {
	return fmt.Sprintf("page:%016x", xxhash.Sum64String(url))
}
