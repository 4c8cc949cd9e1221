package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Addon request metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamnova_http_requests_total",
			Help: "Total number of HTTP requests by route and status code.",
		},
		[]string{"route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streamnova_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	CatalogEntriesServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamnova_catalog_entries_served_total",
			Help: "Total number of catalog entries returned, by kind.",
		},
		[]string{"kind"},
	)

	StreamResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamnova_stream_resolutions_total",
			Help: "Total number of stream lookups by locator kind and result (hit, miss).",
		},
		[]string{"locator", "result"},
	)
)

// Collection metrics
var (
	SkippedRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamnova_skipped_records_total",
			Help: "Total number of records skipped because they could not be used, by stage.",
		},
		[]string{"stage"},
	)

	CollectionLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamnova_collection_loads_total",
			Help: "Total number of collection loads by outcome (ok, missing, error).",
		},
		[]string{"status"},
	)
)

// Collector metrics
var (
	CollectorItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamnova_collector_items_total",
			Help: "Total number of listing items scraped, by source.",
		},
		[]string{"source"},
	)

	CollectorRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamnova_collector_runs_total",
			Help: "Total number of collector runs by status (success, partial, error).",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		CatalogEntriesServed,
		StreamResolutionsTotal,
		SkippedRecordsTotal,
		CollectionLoadsTotal,
		CollectorItemsTotal,
		CollectorRunsTotal,
	)
}
