package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"healthinfo-simplifier/internal/repository"
)

// Sweeper periodically drops history entries older than the retention
// window.
type Sweeper struct {
	repo      repository.HistoryRepository
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	now       func() time.Time
	logger    *slog.Logger
}

// NewSweeper creates a sweeper for repo. It does nothing until Start.
func NewSweeper(repo repository.HistoryRepository, cfg Config, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		repo:      repo,
		retention: cfg.Retention,
		schedule:  cfg.SweepSchedule,
		cron:      cron.New(cron.WithLocation(time.UTC)),
		now:       time.Now,
		logger:    logger,
	}
}

// Start schedules the sweep. With retention disabled it returns without
// scheduling anything.
func (s *Sweeper) Start() error {
	if s.retention <= 0 {
		s.logger.Info("history retention disabled, sweeper not started")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		_, _ = s.Sweep(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule history sweep: %w", err)
	}
	s.cron.Start()

	s.logger.Info("history sweeper started",
		slog.String("schedule", s.schedule),
		slog.Duration("retention", s.retention))
	return nil
}

// Stop stops scheduling and waits for a running sweep, bounded by ctx.
func (s *Sweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("history sweeper stop timed out")
	}
}

// Sweep prunes expired entries once and returns how many were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.retention)
	removed, err := s.repo.PruneOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("history sweep failed", slog.Any("error", err))
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("history sweep completed",
			slog.Int("removed", removed),
			slog.Time("cutoff", cutoff))
	}
	return removed, nil
}
