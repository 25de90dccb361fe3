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

// ArchiveRepo moves terminal requests between the active table and the
// archive. Move and Restore are single transactions so a request exists in
// exactly one table at any point.
type ArchiveRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewArchiveRepo(pool *pgxpool.Pool, logger *slog.Logger) *ArchiveRepo {
	return &ArchiveRepo{pool: pool, logger: logger}
}

const archivedColumns = `
	id, requester_id,
	incident_lat, incident_lng, incident_type,
	search_radius_m, priority, status,
	target_device_ids, responses, status_history,
	created_at, expires_at,
	archived_at, archived_reason, original_id
`

func scanArchived(row pgx.Row) (*domain.ArchivedRequest, error) {
	var a domain.ArchivedRequest
	var targets, responses, history []byte
	err := row.Scan(
		&a.ID,
		&a.RequesterID,
		&a.IncidentLocation.Lat,
		&a.IncidentLocation.Lng,
		&a.IncidentType,
		&a.SearchRadiusM,
		&a.Priority,
		&a.Status,
		&targets,
		&responses,
		&history,
		&a.CreatedAt,
		&a.ExpiresAt,
		&a.ArchivedAt,
		&a.ArchivedReason,
		&a.OriginalID,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(targets, &a.TargetDeviceIDs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(responses, &a.Responses); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &a.StatusHistory); err != nil {
		return nil, err
	}
	return &a, nil
}

// Move relocates one active request into the archive: insert-select plus
// delete in a single transaction. A missing row is ErrNotFound; an id already
// archived is ErrConflict via the primary key.
func (p *ArchiveRepo) Move(ctx context.Context, id uuid.UUID, reason domain.ArchiveReason, archivedAt time.Time) error {
	const op = "postgres.Archive.Move"

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Error("tx begin failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	defer tx.Rollback(ctx)

	const insert = `
		INSERT INTO archived_requests (` + archivedColumns + `)
		SELECT ` + requestColumns + `, $2, $3, id
		FROM footage_requests
		WHERE id = $1
	`
	cmd, err := tx.Exec(ctx, insert, id, archivedAt, reason)
	if err != nil {
		p.logger.Error("archive insert failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM footage_requests WHERE id = $1`, id); err != nil {
		p.logger.Error("source delete failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("tx commit failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

// Restore is Move's inverse: the request goes back to the active table with
// the archive-only columns stripped.
func (p *ArchiveRepo) Restore(ctx context.Context, id uuid.UUID) (*domain.FootageRequest, error) {
	const op = "postgres.Archive.Restore"

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Error("tx begin failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer tx.Rollback(ctx)

	const insert = `
		INSERT INTO footage_requests (` + requestColumns + `)
		SELECT ` + requestColumns + `
		FROM archived_requests
		WHERE id = $1
	`
	cmd, err := tx.Exec(ctx, insert, id)
	if err != nil {
		p.logger.Error("restore insert failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM archived_requests WHERE id = $1`, id); err != nil {
		p.logger.Error("archive delete failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	query := `SELECT ` + requestColumns + ` FROM footage_requests WHERE id = $1`
	req, err := scanRequest(tx.QueryRow(ctx, query, id))
	if err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("tx commit failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return req, nil
}

func (p *ArchiveRepo) Get(ctx context.Context, id uuid.UUID) (*domain.ArchivedRequest, error) {
	const op = "postgres.Archive.Get"

	query := `SELECT ` + archivedColumns + ` FROM archived_requests WHERE id = $1`

	a, err := scanArchived(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return a, nil
}

func (p *ArchiveRepo) ListByRequester(ctx context.Context, userID uuid.UUID) ([]*domain.ArchivedRequest, error) {
	const op = "postgres.Archive.ListByRequester"

	query := `SELECT ` + archivedColumns + ` FROM archived_requests WHERE requester_id = $1 ORDER BY archived_at DESC`

	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var archived []*domain.ArchivedRequest
	for rows.Next() {
		a, err := scanArchived(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		archived = append(archived, a)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return archived, nil
}

func (p *ArchiveRepo) Stats(ctx context.Context) (*domain.ArchiveStats, error) {
	const op = "postgres.Archive.Stats"

	const query = `SELECT archived_reason, COUNT(*) FROM archived_requests GROUP BY archived_reason`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	stats := &domain.ArchiveStats{ByReason: make(map[domain.ArchiveReason]int64)}
	for rows.Next() {
		var reason domain.ArchiveReason
		var count int64
		if err := rows.Scan(&reason, &count); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		stats.ByReason[reason] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return stats, nil
}
