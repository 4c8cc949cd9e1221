package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/streamnova/streamnova/internal/cache"
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/parser"
)

const (
	defaultTimeout  = 10 * time.Second
	retryDelay      = 500 * time.Millisecond
	maxRetryDelay   = 10 * time.Second
	maxListingBytes = 16 << 20
)

// StatusError reports a non-200 answer from a source site.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("page %s returned status %d", e.URL, e.Code)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

// Fetcher downloads listing pages as UTF-8, retrying transient failures and
// serving repeated requests from the page cache.
type Fetcher struct {
	httpClient *http.Client
	pages      cache.PageCache
	retry      retrypolicy.RetryPolicy[[]byte]
}

// NewFetcher creates a fetcher from the collector settings. pages may be nil.
func NewFetcher(cfg config.CollectorConfig, pages cache.PageCache) *Fetcher {
	logger := config.GetLogger()

	base := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyConnectionString != "" {
		if proxyURL, err := url.Parse(cfg.ProxyConnectionString); err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			base.Proxy = http.ProxyURL(proxyURL)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	maxRetries := max(cfg.MaxRetries, 0)
	retry := retrypolicy.NewBuilder[[]byte]().
		HandleIf(func(_ []byte, err error) bool { return retryable(err) }).
		WithBackoff(retryDelay, maxRetryDelay).
		WithMaxRetries(maxRetries).
		OnRetry(func(e failsafe.ExecutionEvent[[]byte]) {
			logger.Warn().Err(e.LastError()).Int("attempt", e.Attempts()).Msg("Retrying listing page")
		}).
		Build()

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   config.ParseDuration(cfg.ClientTimeout, defaultTimeout),
			Transport: newSiteTransport(base, userAgent),
		},
		pages: pages,
		retry: retry,
	}
}

// Fetch returns the body of pageURL converted to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	if f.pages != nil {
		if body, ok := f.pages.Get(ctx, pageURL); ok {
			logger := config.GetLogger()
			logger.Debug().Str("url", pageURL).Msg("Listing page served from cache")
			return body, nil
		}
	}

	body, err := failsafe.With[[]byte](f.retry).
		WithContext(ctx).
		Get(func() ([]byte, error) {
			return f.fetchOnce(ctx, pageURL)
		})
	if err != nil {
		return nil, err
	}

	if f.pages != nil {
		f.pages.Put(ctx, pageURL, body)
	}
	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: pageURL, Code: resp.StatusCode}
	}

	reader, err := parser.NewUTF8Reader(io.LimitReader(resp.Body, maxListingBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// retryable treats client errors other than 429 and cancellation as permanent.
// Timeouts of a single request are retried.
func retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}
