package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"neighbourcam/internal/domain"
	"neighbourcam/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuotaRepo reads and administers the per-user weekly counters. The
// authoritative consume path lives in RequestRepo.CreateWithQuota; this repo
// only serves advisory reads and admin overrides.
type QuotaRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewQuotaRepo(pool *pgxpool.Pool, logger *slog.Logger) *QuotaRepo {
	return &QuotaRepo{pool: pool, logger: logger}
}

func (p *QuotaRepo) GetOrInit(ctx context.Context, userID uuid.UUID, defaultLimit int, nextReset time.Time) (*domain.RateLimitRecord, error) {
	const op = "postgres.Quota.GetOrInit"

	const query = `
		INSERT INTO user_quotas (user_id, weekly_count, weekly_limit, reset_at)
		VALUES ($1, 0, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, weekly_count, weekly_limit, reset_at
	`

	var rec domain.RateLimitRecord
	err := p.pool.QueryRow(ctx, query, userID, defaultLimit, nextReset).Scan(
		&rec.UserID,
		&rec.WeeklyCount,
		&rec.WeeklyLimit,
		&rec.ResetAt,
	)
	if err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("user_id", userID.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return &rec, nil
}

// Reset zeroes the counter unconditionally. Admin intervention only; the
// lazy weekly rollover goes through ResetIfDue.
func (p *QuotaRepo) Reset(ctx context.Context, userID uuid.UUID, nextReset time.Time) error {
	const op = "postgres.Quota.Reset"

	const query = `
		UPDATE user_quotas
		SET weekly_count = 0, reset_at = $2
		WHERE user_id = $1
	`

	cmd, err := p.pool.Exec(ctx, query, userID, nextReset)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("user_id", userID.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

// ResetIfDue zeroes the counter only when the stored window has actually
// ended. Guarding on reset_at in SQL keeps the advisory read path from
// clobbering a reset-and-consume a concurrent CreateWithQuota already did.
func (p *QuotaRepo) ResetIfDue(ctx context.Context, userID uuid.UUID, now, nextReset time.Time) (bool, error) {
	const op = "postgres.Quota.ResetIfDue"

	const query = `
		UPDATE user_quotas
		SET weekly_count = 0, reset_at = $3
		WHERE user_id = $1 AND reset_at <= $2
	`

	cmd, err := p.pool.Exec(ctx, query, userID, now, nextReset)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("user_id", userID.String()))
		return false, e.WrapError(ctx, op, err)
	}

	return cmd.RowsAffected() > 0, nil
}

func (p *QuotaRepo) SetLimit(ctx context.Context, userID uuid.UUID, limit int) error {
	const op = "postgres.Quota.SetLimit"

	const query = `
		INSERT INTO user_quotas (user_id, weekly_count, weekly_limit, reset_at)
		VALUES ($1, 0, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET weekly_limit = EXCLUDED.weekly_limit
	`

	_, err := p.pool.Exec(ctx, query, userID, limit, domain.NextMonday(time.Now()))
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("user_id", userID.String()))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

// Get reads the raw record without initializing one. Used by the integration
// tests and the admin surface.
func (p *QuotaRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.RateLimitRecord, error) {
	const op = "postgres.Quota.Get"

	const query = `SELECT user_id, weekly_count, weekly_limit, reset_at FROM user_quotas WHERE user_id = $1`

	var rec domain.RateLimitRecord
	err := p.pool.QueryRow(ctx, query, userID).Scan(
		&rec.UserID,
		&rec.WeeklyCount,
		&rec.WeeklyLimit,
		&rec.ResetAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("user_id", userID.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return &rec, nil
}
