package addon

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/metrics"
)

// observe logs every request and records its route metrics.
func observe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		duration := time.Since(start)
		route := c.Route().Path
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())

		logger := config.GetLogger()
		logger.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("duration_ms", duration.Milliseconds()).
			Str("remote_addr", c.IP()).
			Msg("HTTP request")

		return err
	}
}
