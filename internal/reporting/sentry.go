// Package reporting forwards failures that are otherwise only logged to Sentry.
// Without a DSN every call is a no-op.
package reporting

import (
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/streamnova/streamnova/internal/config"
)

// Init configures the global Sentry hub. The returned function flushes
// buffered events and should be deferred by the caller.
func Init(dsn, environment, release string) (func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		return func() {}, err
	}

	logger := config.GetLogger()
	if dsn != "" {
		logger.Info().Str("environment", environment).Msg("Sentry error reporting enabled")
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureError reports err with the given tags.
func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}
