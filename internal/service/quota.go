package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"neighbourcam/internal/domain"
	"neighbourcam/pkg/e"

	"github.com/google/uuid"
)

// QuotaService reads and administers the per-user weekly request counter.
// The authoritative consume happens inside RequestStore.CreateWithQuota in
// the same transaction as the request insert; Check here is the advisory
// read the UI shows, with the same lazy Monday reset applied.
type QuotaService struct {
	store        QuotaStore
	defaultLimit int
	logger       *slog.Logger
	now          func() time.Time
}

func NewQuotaService(store QuotaStore, defaultLimit int, logger *slog.Logger) *QuotaService {
	if defaultLimit < 1 {
		defaultLimit = 3
	}
	return &QuotaService{
		store:        store,
		defaultLimit: defaultLimit,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *QuotaService) Check(ctx context.Context, userID uuid.UUID) (domain.QuotaStatus, error) {
	const op = "service.Quota.Check"

	now := s.now()
	rec, err := s.store.GetOrInit(ctx, userID, s.defaultLimit, domain.NextMonday(now))
	if err != nil {
		return domain.QuotaStatus{}, e.Wrap(op, err)
	}

	if !rec.ResetAt.After(now) {
		next := domain.NextMonday(now)
		reset, err := s.store.ResetIfDue(ctx, userID, now, next)
		if err != nil {
			return domain.QuotaStatus{}, e.Wrap(op, err)
		}
		if reset {
			rec.WeeklyCount = 0
			rec.ResetAt = next
		} else {
			// A concurrent consume already rolled the window over; re-read
			// rather than report the stale counter.
			rec, err = s.store.GetOrInit(ctx, userID, s.defaultLimit, next)
			if err != nil {
				return domain.QuotaStatus{}, e.Wrap(op, err)
			}
		}
	}

	remaining := rec.WeeklyLimit - rec.WeeklyCount
	if remaining < 0 {
		remaining = 0
	}
	status := domain.QuotaStatus{
		Allowed:   remaining > 0,
		Remaining: remaining,
		Limit:     rec.WeeklyLimit,
		ResetAt:   rec.ResetAt,
	}
	if remaining > 0 {
		status.Message = fmt.Sprintf("%d request(s) remaining this week", remaining)
	} else {
		status.Message = fmt.Sprintf("weekly limit reached, resets %s", rec.ResetAt.Format("Mon 2 Jan"))
	}
	return status, nil
}

// SetLimit is administrator-only; there is no self-service path to a bigger
// quota.
func (s *QuotaService) SetLimit(ctx context.Context, userID uuid.UUID, limit int) error {
	const op = "service.Quota.SetLimit"

	if limit < 1 || limit > 100 {
		return fmt.Errorf("%s: limit must be 1-100: %w", op, e.ErrInvalidRange)
	}
	if err := s.store.SetLimit(ctx, userID, limit); err != nil {
		return e.Wrap(op, err)
	}
	s.logger.Info("quota limit overridden",
		slog.String("user_id", userID.String()), slog.Int("limit", limit))
	return nil
}

// ResetUser zeroes a user's counter ahead of schedule (manual intervention).
func (s *QuotaService) ResetUser(ctx context.Context, userID uuid.UUID) error {
	const op = "service.Quota.ResetUser"

	if err := s.store.Reset(ctx, userID, domain.NextMonday(s.now())); err != nil {
		return e.Wrap(op, err)
	}
	s.logger.Info("quota counter reset", slog.String("user_id", userID.String()))
	return nil
}
