package postgres

import (
	"context"
	"log/slog"
	"time"

	"neighbourcam/internal/domain"
	"neighbourcam/internal/geo"
	"neighbourcam/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MarkerRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewMarkerRepo(pool *pgxpool.Pool, logger *slog.Logger) *MarkerRepo {
	return &MarkerRepo{pool: pool, logger: logger}
}

func (p *MarkerRepo) Create(ctx context.Context, marker *domain.TemporaryMarker) error {
	const op = "postgres.Marker.Create"

	const query = `
		INSERT INTO markers (id, owner_id, device_type, exact_lat, exact_lng, display_lat, display_lng, created_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`

	if marker.ID == uuid.Nil {
		marker.ID = uuid.New()
	}
	if marker.CreatedAt.IsZero() {
		marker.CreatedAt = time.Now().UTC()
	}

	_, err := p.pool.Exec(ctx, query,
		marker.ID,
		marker.OwnerID,
		marker.DeviceType,
		marker.ExactLocation.Lat,
		marker.ExactLocation.Lng,
		marker.DisplayLocation.Lat,
		marker.DisplayLocation.Lng,
		marker.CreatedAt,
		marker.ExpiresAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

// ListActiveInBox returns unexpired markers inside the box. Expired rows are
// left in place; they simply stop matching and are cheap to keep.
func (p *MarkerRepo) ListActiveInBox(ctx context.Context, box geo.Box, now time.Time) ([]*domain.TemporaryMarker, error) {
	const op = "postgres.Marker.ListActiveInBox"

	const query = `
		SELECT id, owner_id, device_type, exact_lat, exact_lng, display_lat, display_lng, created_at, expires_at
		FROM markers
		WHERE expires_at > $1
		  AND exact_lat BETWEEN $2 AND $3
		  AND exact_lng BETWEEN $4 AND $5
	`

	rows, err := p.pool.Query(ctx, query, now, box.MinLat, box.MaxLat, box.MinLng, box.MaxLng)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var markers []*domain.TemporaryMarker
	for rows.Next() {
		var m domain.TemporaryMarker
		if err := rows.Scan(
			&m.ID,
			&m.OwnerID,
			&m.DeviceType,
			&m.ExactLocation.Lat,
			&m.ExactLocation.Lng,
			&m.DisplayLocation.Lat,
			&m.DisplayLocation.Lng,
			&m.CreatedAt,
			&m.ExpiresAt,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		markers = append(markers, &m)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return markers, nil
}
