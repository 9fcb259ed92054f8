// Package scheduler runs the scoring pipeline on a daily cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/soltree-games/scorekeeper/internal/config"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// Runner executes one full scoring run.
type Runner interface {
	Run(ctx context.Context) error
}

// Service handles periodic scoring runs.
type Service struct {
	config *config.SchedulerConfig
	runner Runner
	log    *logger.Logger
	cron   *cron.Cron
}

// NewService creates a new scheduler service.
func NewService(cfg *config.SchedulerConfig, runner Runner, log *logger.Logger) *Service {
	return &Service{
		config: cfg,
		runner: runner,
		log:    log,
	}
}

// Start initializes and starts the cron scheduler.
func (s *Service) Start() error {
	if !s.config.Enabled {
		s.log.Info().Msg("Scheduler is disabled in configuration")
		return nil
	}

	// Load timezone
	location, err := s.config.GetLocation()
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s.config.Timezone, err)
	}

	// Create cron scheduler with timezone
	s.cron = cron.New(cron.WithLocation(location))

	cronExpr, err := s.buildCronExpression()
	if err != nil {
		return fmt.Errorf("failed to build cron expression: %w", err)
	}

	// Register daily scoring job
	_, err = s.cron.AddFunc(cronExpr, func() {
		s.runScoring(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to register scoring job: %w", err)
	}

	s.cron.Start()

	// Log scheduler start with next run time
	entries := s.cron.Entries()
	nextRun := ""
	if len(entries) > 0 {
		nextRun = entries[0].Next.Format(time.RFC3339)
	}

	s.log.Info().
		Str("schedule", cronExpr).
		Str("timezone", s.config.Timezone).
		Str("time", s.config.Time).
		Str("next_run", nextRun).
		Msg("Scheduler started")

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Service) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.log.Info().Msg("Scheduler stopped")
	}
}

// buildCronExpression generates a cron expression from config.
func (s *Service) buildCronExpression() (string, error) {
	// Parse time string (format: "HH:MM")
	parts := strings.Split(s.config.Time, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM", s.config.Time)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour %q", parts[0])
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute %q", parts[1])
	}

	// Format: "minute hour day month weekday", every day
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// runScoring executes one scheduled scoring run.
func (s *Service) runScoring(ctx context.Context) {
	start := time.Now()
	s.log.Info().Msg("Running scheduled scoring job")

	if err := s.runner.Run(ctx); err != nil {
		s.log.Error().
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("Scheduled scoring run failed")
		return
	}

	s.log.Info().
		Dur("duration", time.Since(start)).
		Msg("Scheduled scoring run completed")
}
