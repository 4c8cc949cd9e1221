package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/streamnova/streamnova/internal/addon"
	"github.com/streamnova/streamnova/internal/cache"
	"github.com/streamnova/streamnova/internal/collector"
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/metrics"
	"github.com/streamnova/streamnova/internal/reporting"
	"github.com/streamnova/streamnova/internal/scheduler"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Stremio addon server",
		Long:  "Serve the manifest, catalog and stream endpoints. When collector.schedule is set the collector also runs on that schedule.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), config.GetConfig())
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := config.GetLogger()

	flush, err := reporting.Init(cfg.Sentry.DSN, cfg.Sentry.Environment, version)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize Sentry")
	}
	defer flush()

	logger.Info().
		Str("database_path", cfg.DatabasePath).
		Str("server_address", cfg.Server.Address).
		Int("server_port", cfg.Server.Port).
		Str("version", version).
		Msg("Application started with configuration")

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	if cfg.Collector.Schedule != "" {
		pages, err := cache.FromConfig(cfg.Cache, "collector")
		if err != nil {
			return err
		}
		defer pages.Close()

		sched := scheduler.NewScheduler(cfg.Collector.Schedule, collector.New(cfg, pages))
		if err := sched.Start(); err != nil {
			return err
		}
		defer func() { <-sched.Stop().Done() }()
	}

	server := addon.NewServer(cfg)
	if err := server.Start(ctx); err != nil {
		return err
	}

	logger.Info().Msg("Server stopped gracefully")
	return nil
}
