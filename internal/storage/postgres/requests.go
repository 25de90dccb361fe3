package postgres

import (
	"context"
	"encoding/json"
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

// RequestRepo persists footage requests. The per-device response slots and
// the status history travel as JSONB: they are always read and written as a
// whole under Mutate's row lock, so relational decomposition buys nothing.
type RequestRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewRequestRepo(pool *pgxpool.Pool, logger *slog.Logger) *RequestRepo {
	return &RequestRepo{pool: pool, logger: logger}
}

const requestColumns = `
	id, requester_id,
	incident_lat, incident_lng, incident_type,
	search_radius_m, priority, status,
	target_device_ids, responses, status_history,
	created_at, expires_at
`

type requestDocs struct {
	targets   []byte
	responses []byte
	history   []byte
}

func marshalRequestDocs(op string, req *domain.FootageRequest) (requestDocs, error) {
	var docs requestDocs
	var err error
	if docs.targets, err = json.Marshal(req.TargetDeviceIDs); err != nil {
		return docs, e.Wrap(op, err)
	}
	if docs.responses, err = json.Marshal(req.Responses); err != nil {
		return docs, e.Wrap(op, err)
	}
	if docs.history, err = json.Marshal(req.StatusHistory); err != nil {
		return docs, e.Wrap(op, err)
	}
	return docs, nil
}

func scanRequest(row pgx.Row) (*domain.FootageRequest, error) {
	var req domain.FootageRequest
	var targets, responses, history []byte
	err := row.Scan(
		&req.ID,
		&req.RequesterID,
		&req.IncidentLocation.Lat,
		&req.IncidentLocation.Lng,
		&req.IncidentType,
		&req.SearchRadiusM,
		&req.Priority,
		&req.Status,
		&targets,
		&responses,
		&history,
		&req.CreatedAt,
		&req.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(targets, &req.TargetDeviceIDs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(responses, &req.Responses); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &req.StatusHistory); err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateWithQuota inserts the request and consumes one quota slot in a single
// transaction. The quota row is initialized on first use, lazily reset when
// its window has passed, then incremented only while under the limit; zero
// rows from the increment means the user is at their cap and the whole
// transaction rolls back.
func (p *RequestRepo) CreateWithQuota(ctx context.Context, req *domain.FootageRequest, defaultLimit int, now, nextReset time.Time) error {
	const op = "postgres.Request.CreateWithQuota"

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	docs, err := marshalRequestDocs(op, req)
	if err != nil {
		return err
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Error("tx begin failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	defer tx.Rollback(ctx)

	const initQuota = `
		INSERT INTO user_quotas (user_id, weekly_count, weekly_limit, reset_at)
		VALUES ($1, 0, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, initQuota, req.RequesterID, defaultLimit, nextReset); err != nil {
		p.logger.Error("quota init failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	const lazyReset = `
		UPDATE user_quotas
		SET weekly_count = 0, reset_at = $2
		WHERE user_id = $1 AND reset_at <= $3
	`
	if _, err := tx.Exec(ctx, lazyReset, req.RequesterID, nextReset, now); err != nil {
		p.logger.Error("quota reset failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	const consume = `
		UPDATE user_quotas
		SET weekly_count = weekly_count + 1
		WHERE user_id = $1 AND weekly_count < weekly_limit
	`
	cmd, err := tx.Exec(ctx, consume, req.RequesterID)
	if err != nil {
		p.logger.Error("quota consume failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrQuotaExceeded)
	}

	const insert = `
		INSERT INTO footage_requests (` + requestColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`
	_, err = tx.Exec(ctx, insert,
		req.ID,
		req.RequesterID,
		req.IncidentLocation.Lat,
		req.IncidentLocation.Lng,
		req.IncidentType,
		req.SearchRadiusM,
		req.Priority,
		req.Status,
		docs.targets,
		docs.responses,
		docs.history,
		req.CreatedAt,
		req.ExpiresAt,
	)
	if err != nil {
		p.logger.Error("request insert failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("tx commit failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *RequestRepo) Get(ctx context.Context, id uuid.UUID) (*domain.FootageRequest, error) {
	const op = "postgres.Request.Get"

	query := `SELECT ` + requestColumns + ` FROM footage_requests WHERE id = $1`

	req, err := scanRequest(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return req, nil
}

// Mutate loads the request under FOR UPDATE, applies fn, and writes the
// mutable columns back before committing. Concurrent responders serialize on
// the row lock, so no slot update can be lost.
func (p *RequestRepo) Mutate(ctx context.Context, id uuid.UUID, fn func(*domain.FootageRequest) error) (*domain.FootageRequest, error) {
	const op = "postgres.Request.Mutate"

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Error("tx begin failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + requestColumns + ` FROM footage_requests WHERE id = $1 FOR UPDATE`

	req, err := scanRequest(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := fn(req); err != nil {
		return nil, err
	}

	docs, err := marshalRequestDocs(op, req)
	if err != nil {
		return nil, err
	}

	const update = `
		UPDATE footage_requests
		SET status = $2, responses = $3, status_history = $4
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, update, req.ID, req.Status, docs.responses, docs.history); err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("tx commit failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return req, nil
}

func (p *RequestRepo) ListExpiredPending(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	const op = "postgres.Request.ListExpiredPending"

	// Only pending requests expire; an approved request past its window is
	// the archive sweep's business.
	const query = `
		SELECT id FROM footage_requests
		WHERE status = 'pending' AND expires_at <= $1
	`

	rows, err := p.pool.Query(ctx, query, now)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return ids, nil
}

func (p *RequestRepo) ListAll(ctx context.Context) ([]*domain.FootageRequest, error) {
	const op = "postgres.Request.ListAll"

	query := `SELECT ` + requestColumns + ` FROM footage_requests ORDER BY created_at DESC`

	return p.list(ctx, op, query)
}

func (p *RequestRepo) ListByRequester(ctx context.Context, userID uuid.UUID) ([]*domain.FootageRequest, error) {
	const op = "postgres.Request.ListByRequester"

	query := `SELECT ` + requestColumns + ` FROM footage_requests WHERE requester_id = $1 ORDER BY created_at DESC`

	return p.list(ctx, op, query, userID)
}

// ListTargetingDevices returns every request holding a response slot for any
// of the given devices, via the GIN index on target_device_ids.
func (p *RequestRepo) ListTargetingDevices(ctx context.Context, deviceIDs []uuid.UUID) ([]*domain.FootageRequest, error) {
	const op = "postgres.Request.ListTargetingDevices"

	if len(deviceIDs) == 0 {
		return nil, nil
	}

	keys := make([]string, len(deviceIDs))
	for i, id := range deviceIDs {
		keys[i] = id.String()
	}

	query := `SELECT ` + requestColumns + ` FROM footage_requests WHERE target_device_ids ?| $1 ORDER BY created_at DESC`

	return p.list(ctx, op, query, keys)
}

func (p *RequestRepo) list(ctx context.Context, op, query string, args ...any) ([]*domain.FootageRequest, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var reqs []*domain.FootageRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return reqs, nil
}
