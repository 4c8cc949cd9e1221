// Package scheduler runs the collector on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/streamnova/streamnova/internal/collector"
	"github.com/streamnova/streamnova/internal/config"
	"github.com/streamnova/streamnova/internal/reporting"
)

// Runner is one collector run.
type Runner interface {
	Run(ctx context.Context) (*collector.Summary, error)
}

// Scheduler manages the scheduled collector runs.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	runner  Runner
	timeout time.Duration
	logger  zerolog.Logger

	mu      sync.Mutex
	lastRun *collector.Summary
}

// NewScheduler creates a scheduler for runner. An empty spec disables it.
func NewScheduler(spec string, runner Runner) *Scheduler {
	logger := config.GetLogger().With().Str("component", "scheduler").Logger()
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger}),
			cron.SkipIfStillRunning(cronLogger{logger}),
		)),
		spec:    spec,
		runner:  runner,
		timeout: time.Hour,
		logger:  logger,
	}
}

// Start registers the collector job and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.logger.Info().Msg("No collector schedule configured")
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.runCollect); err != nil {
		return fmt.Errorf("failed to add collector job %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info().Str("schedule", s.spec).Msg("Scheduler started")
	return nil
}

// Stop stops the scheduler. The returned context is done once a running job finishes.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info().Msg("Stopping scheduler")
	return s.cron.Stop()
}

func (s *Scheduler) runCollect() {
	s.logger.Info().Msg("Running scheduled collection")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	summary, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Collection job failed")
		reporting.CaptureError(err, map[string]string{"stage": "collect"})
		return
	}

	s.mu.Lock()
	previous := s.lastRun
	s.lastRun = summary
	s.mu.Unlock()

	event := s.logger.Info()
	if previous != nil {
		event = event.Str("previous_run_id", previous.RunID).Int("previous_unique", previous.Unique)
	}
	event.
		Str("run_id", summary.RunID).
		Int("unique", summary.Unique).
		Strs("failed", summary.Failed).
		Dur("duration", summary.Duration).
		Msg("Collection job completed")
}

// cronLogger adapts zerolog to the cron.Logger interface.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
