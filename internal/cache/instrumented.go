package cache

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// instrumented counts hits and misses of the wrapped cache.
type instrumented struct {
	inner   PageCache
	group   string
	entries prometheus.Collector
}

func newInstrumented(inner PageCache, group string) *instrumented {
	return &instrumented{
		inner:   inner,
		group:   group,
		entries: registerEntries(group, inner.Len),
	}
}

func (c *instrumented) Get(ctx context.Context, url string) ([]byte, bool) {
	body, ok := c.inner.Get(ctx, url)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return body, ok
}

func (c *instrumented) Put(ctx context.Context, url string, body []byte) {
	c.inner.Put(ctx, url, body)
}

func (c *instrumented) Len() int {
	return c.inner.Len()
}

func (c *instrumented) Close() error {
	registerer.Unregister(c.entries)
	return c.inner.Close()
}
