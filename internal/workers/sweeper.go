package workers

import (
	"context"
	"log/slog"
	"time"

	"neighbourcam/internal/domain"
)

type ExpirySweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

type Archiver interface {
	AutoArchive(ctx context.Context) (*domain.ArchiveSweepResult, error)
}

// Sweeper periodically expires overdue requests and moves aged terminal
// ones into the archive. Both passes also run once at startup so a restart
// does not leave a backlog waiting a full interval.
type Sweeper struct {
	logger   *slog.Logger
	requests ExpirySweeper
	archive  Archiver
	interval time.Duration
}

func NewSweeper(logger *slog.Logger, requests ExpirySweeper, archive Archiver, interval time.Duration) *Sweeper {
	return &Sweeper{
		logger:   logger,
		requests: requests,
		archive:  archive,
		interval: interval,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("Sweeper started", slog.Duration("interval", s.interval))

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper stopped", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	expired, err := s.requests.SweepExpired(ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed", slog.Any("error", err))
	} else if expired > 0 {
		s.logger.Info("requests expired", slog.Int("count", expired))
	}

	result, err := s.archive.AutoArchive(ctx)
	if err != nil {
		s.logger.Error("archive sweep failed", slog.Any("error", err))
		return
	}
	if result.Archived > 0 {
		s.logger.Info("requests archived",
			slog.Int("count", result.Archived),
			slog.Any("by_reason", result.ByReason),
		)
	}
}
