// Package collector scrapes the configured source sites into collection files.
package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/streamnova/streamnova/internal/apperrors"
	"github.com/streamnova/streamnova/internal/cache"
	"github.com/streamnova/streamnova/internal/catalog"
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/metrics"
	"github.com/streamnova/streamnova/internal/models"
	"github.com/streamnova/streamnova/internal/parser"
	"github.com/streamnova/streamnova/internal/reporting"
	"github.com/streamnova/streamnova/internal/store"
)

// defaultMaxPages bounds pagination when a source sets a next selector but no page limit.
const defaultMaxPages = 50

// ParserFactory builds the page parser for one source.
type ParserFactory func(source config.SourceConfig) (parser.PageParser[models.ScrapedItem], error)

// Collector fetches every configured source and writes the merged collection.
type Collector struct {
	fetcher      *Fetcher
	newParser    ParserFactory
	sources      []config.SourceConfig
	dataDir      string
	databasePath string
}

// New creates a collector for cfg. pages may be nil to disable page caching.
func New(cfg *config.Config, pages cache.PageCache) *Collector {
	return &Collector{
		fetcher:      NewFetcher(cfg.Collector, pages),
		newParser:    listingParser,
		sources:      cfg.Collector.Sources,
		dataDir:      cfg.DataDir,
		databasePath: cfg.DatabasePath,
	}
}

func listingParser(source config.SourceConfig) (parser.PageParser[models.ScrapedItem], error) {
	p, err := parser.NewListingParser(source)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// StreamSource streams the items of one source, following its pagination.
// A failure on the first page is sent as an ErrSourceFailed; failures on later
// pages end pagination with a warning.
func (c *Collector) StreamSource(ctx context.Context, source config.SourceConfig) <-chan models.StreamResult[models.ScrapedItem] {
	ch := make(chan models.StreamResult[models.ScrapedItem])

	go func() {
		defer close(ch)
		logger := config.GetLogger()

		listing, err := c.newParser(source)
		if err != nil {
			sendResult(ctx, ch, models.StreamResult[models.ScrapedItem]{Err: &apperrors.ErrSourceFailed{Source: source.Name, URL: source.BaseURL, Err: err}})
			return
		}

		maxPages := source.MaxPages
		if maxPages <= 0 {
			maxPages = 1
			if source.NextSelector != "" {
				maxPages = defaultMaxPages
			}
		}

		pageURL := strings.TrimRight(source.BaseURL, "/") + source.ListPath
		visited := make(map[string]struct{})

		for page := 1; page <= maxPages && pageURL != ""; page++ {
			if _, seen := visited[pageURL]; seen {
				logger.Debug().Str("source", source.Name).Str("url", pageURL).Msg("Pagination loop detected, stopping")
				return
			}
			visited[pageURL] = struct{}{}

			body, err := c.fetcher.Fetch(ctx, pageURL)
			if err != nil {
				if page == 1 {
					sendResult(ctx, ch, models.StreamResult[models.ScrapedItem]{Err: &apperrors.ErrSourceFailed{Source: source.Name, URL: pageURL, Err: err}})
				} else {
					logger.Warn().Err(err).Str("source", source.Name).Str("url", pageURL).Msg("Failed to fetch listing page, stopping pagination")
				}
				return
			}

			parsed, err := listing.ParsePage(bytes.NewReader(body), pageURL)
			if err != nil {
				if page == 1 {
					sendResult(ctx, ch, models.StreamResult[models.ScrapedItem]{Err: &apperrors.ErrSourceFailed{Source: source.Name, URL: pageURL, Err: err}})
				}
				return
			}

			for _, item := range parsed.Items {
				if !sendResult(ctx, ch, models.StreamResult[models.ScrapedItem]{Value: item}) {
					return
				}
				metrics.CollectorItemsTotal.WithLabelValues(source.Name).Inc()
			}

			pageURL = parsed.Next
		}
	}()

	return ch
}

// StreamAll streams the items of all sources, fetched in parallel.
// The channel is closed when every source has finished.
func (c *Collector) StreamAll(ctx context.Context) <-chan models.StreamResult[models.ScrapedItem] {
	ch := make(chan models.StreamResult[models.ScrapedItem])

	go func() {
		defer close(ch)

		var wg sync.WaitGroup
		wg.Add(len(c.sources))
		for _, source := range c.sources {
			go func() {
				defer wg.Done()
				for result := range c.StreamSource(ctx, source) {
					if !sendResult(ctx, ch, result) {
						return
					}
				}
			}()
		}
		wg.Wait()
	}()

	return ch
}

// Summary describes one collector run.
type Summary struct {
	RunID    string
	Items    map[string]int // scraped items per source
	Failed   []string       // sources whose listing could not be read
	Total    int            // items before deduplication
	Unique   int            // records written to the collection
	Duration time.Duration
}

// Run scrapes every source, writes one dump per source into the data
// directory, then writes the deduplicated union to the collection. The
// collection is left untouched when every source fails.
func (c *Collector) Run(ctx context.Context) (*Summary, error) {
	logger := config.GetLogger()
	start := time.Now()
	summary := &Summary{RunID: uuid.NewString(), Items: make(map[string]int)}
	runLogger := logger.With().Str("run_id", summary.RunID).Logger()
	runLogger.Info().Int("sources", len(c.sources)).Msg("Starting collector run")

	if len(c.sources) == 0 {
		metrics.CollectorRunsTotal.WithLabelValues("error").Inc()
		return summary, errors.New("no collector sources configured")
	}

	bySource := make(map[string][]models.RawRecord, len(c.sources))
	failed := make(map[string]bool)
	var sourceErrs []error

	for result := range c.StreamAll(ctx) {
		if result.Err != nil {
			runLogger.Error().Err(result.Err).Msg("Source failed")
			reporting.CaptureError(result.Err, map[string]string{"stage": "collector", "run_id": summary.RunID})
			sourceErrs = append(sourceErrs, result.Err)
			var sourceErr *apperrors.ErrSourceFailed
			if errors.As(result.Err, &sourceErr) {
				failed[sourceErr.Source] = true
				summary.Failed = append(summary.Failed, sourceErr.Source)
			}
			continue
		}
		summary.Total++
		bySource[result.Value.Source] = append(bySource[result.Value.Source], result.Value.Raw())
	}

	if err := ctx.Err(); err != nil {
		metrics.CollectorRunsTotal.WithLabelValues("error").Inc()
		return summary, fmt.Errorf("collector run cancelled: %w", err)
	}
	if len(sourceErrs) == len(c.sources) {
		metrics.CollectorRunsTotal.WithLabelValues("error").Inc()
		return summary, fmt.Errorf("all sources failed: %w", errors.Join(sourceErrs...))
	}

	var merged []models.RawRecord
	for _, source := range c.sources {
		if failed[source.Name] {
			continue
		}
		records := bySource[source.Name]
		summary.Items[source.Name] = len(records)
		dump := filepath.Join(c.dataDir, source.Name+".json")
		if err := store.Save(ctx, dump, records); err != nil {
			metrics.CollectorRunsTotal.WithLabelValues("error").Inc()
			return summary, fmt.Errorf("write %s dump: %w", source.Name, err)
		}
		merged = append(merged, records...)
	}

	unique := catalog.Dedupe(merged)
	if err := store.Save(ctx, c.databasePath, unique); err != nil {
		metrics.CollectorRunsTotal.WithLabelValues("error").Inc()
		return summary, fmt.Errorf("write collection: %w", err)
	}

	summary.Unique = len(unique)
	summary.Duration = time.Since(start)

	status := "success"
	if len(sourceErrs) > 0 {
		status = "partial"
	}
	metrics.CollectorRunsTotal.WithLabelValues(status).Inc()

	runLogger.Info().
		Str("status", status).
		Int("total", summary.Total).
		Int("unique", summary.Unique).
		Dur("duration", summary.Duration).
		Msg("Collector run finished")
	return summary, nil
}

func sendResult[T any](ctx context.Context, ch chan<- models.StreamResult[T], result models.StreamResult[T]) bool {
	select {
	case ch <- result:
		return true
	case <-ctx.Done():
		return false
	}
}
