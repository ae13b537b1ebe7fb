package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler manages the daily stock scan using gocron.
type Scheduler struct {
	cron   gocron.Scheduler
	job    *StockScanJob
	at     string
	logger *slog.Logger
}

// New creates a Scheduler that runs the stock scan once a day at the given
// "HH:MM" local time in the given location.
func New(job *StockScanJob, at string, loc *time.Location, logger *slog.Logger) (*Scheduler, error) {
	cron, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}
	return &Scheduler{cron: cron, job: job, at: at, logger: logger}, nil
}

// Start schedules the stock scan and starts the gocron scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	def, err := buildDailyAtTimeJob(s.at)
	if err != nil {
		return fmt.Errorf("building stock scan schedule: %w", err)
	}

	if _, err := s.cron.NewJob(def, gocron.NewTask(func() {
		s.job.Run(ctx)
	})); err != nil {
		return fmt.Errorf("scheduling stock scan: %w", err)
	}

	s.cron.Start()
	s.logger.Info("stock scan scheduled", "at", s.at)
	return nil
}

// Stop shuts down the gocron scheduler.
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}

// buildDailyAtTimeJob parses an "HH:MM" string and returns a DailyJob definition.
func buildDailyAtTimeJob(at string) (gocron.JobDefinition, error) {
	parts := strings.Split(at, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid time format: %s", at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("parsing hour: %w", err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("parsing minute: %w", err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("time values out of range: %d:%d", hour, minute)
	}
	return gocron.DailyJob(
		1,
		gocron.NewAtTimes(gocron.NewAtTime(
			uint(hour),   //nolint:gosec // bounds checked above
			uint(minute), //nolint:gosec // bounds checked above
			0,
		)),
	), nil
}
