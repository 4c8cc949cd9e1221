package cache

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Page cache metrics, labelled by the cache group.
var (
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamnova_page_cache_hits_total",
			Help: "Total number of page cache hits.",
		},
		[]string{"cache"},
	)

	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamnova_page_cache_misses_total",
			Help: "Total number of page cache misses.",
		},
		[]string{"cache"},
	)

	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamnova_page_cache_evictions_total",
			Help: "Total number of pages evicted from the cache.",
		},
		[]string{"cache"},
	)
)

// registerer is swapped by tests.
var registerer prometheus.Registerer = prometheus.DefaultRegisterer

func init() {
	prometheus.MustRegister(HitsTotal, MissesTotal, EvictionsTotal)
}

// registerEntries exposes the live page count of one cache group. A gauge left
// behind by an earlier cache of the same group is replaced.
func registerEntries(group string, lenFunc func() int) prometheus.Collector {
	gauge := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "streamnova_page_cache_entries",
			Help:        "Current number of pages in the cache.",
			ConstLabels: prometheus.Labels{"cache": group},
		},
		func() float64 { return float64(lenFunc()) },
	)

	if err := registerer.Register(gauge); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			registerer.Unregister(already.ExistingCollector)
			_ = registerer.Register(gauge)
		}
	}
	return gauge
}
