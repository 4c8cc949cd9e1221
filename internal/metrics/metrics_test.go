package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestMetrics_CounterVecs(t *testing.T) {
	tests := []struct {
		name   string
		cv     *prometheus.CounterVec
		labels []string
	}{
		{"http requests", HTTPRequestsTotal, []string{"/health", "200"}},
		{"catalog entries", CatalogEntriesServed, []string{"movie"}},
		{"stream resolutions", StreamResolutionsTotal, []string{"series", "hit"}},
		{"skipped records", SkippedRecordsTotal, []string{"catalog"}},
		{"collection loads", CollectionLoadsTotal, []string{"missing"}},
		{"collector items", CollectorItemsTotal, []string{"latanime"}},
		{"collector runs", CollectorRunsTotal, []string{"success"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := getCounterVecValue(tt.cv, tt.labels...)
			tt.cv.WithLabelValues(tt.labels...).Inc()
			after := getCounterVecValue(tt.cv, tt.labels...)

			if after != before+1 {
				t.Errorf("Expected counter to increment by 1, got diff %.0f", after-before)
			}
		})
	}
}

func TestMetrics_HTTPRequestDuration(t *testing.T) {
	HTTPRequestDuration.WithLabelValues("/manifest.json").Observe(0.01)

	h, err := HTTPRequestDuration.GetMetricWithLabelValues("/manifest.json")
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues: %v", err)
	}
	var m dto.Metric
	if err := h.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if m.GetHistogram().GetSampleCount() < 1 {
		t.Error("Expected at least one observation")
	}
}

func TestMetrics_NewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("localhost", 9090)

	if srv.Addr != "localhost:9090" {
		t.Errorf("Expected address 'localhost:9090', got '%s'", srv.Addr)
	}

	if srv.Handler == nil {
		t.Error("Expected handler to be set")
	}
}

func TestMetrics_NewHTTPServer_DefaultPort(t *testing.T) {
	srv := NewHTTPServer("0.0.0.0", 0)

	if srv.Addr != "0.0.0.0:9090" {
		t.Errorf("Expected address '0.0.0.0:9090', got '%s'", srv.Addr)
	}
}
