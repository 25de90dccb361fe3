package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"neighbourcam/internal/domain"
	"neighbourcam/internal/geo"
	"neighbourcam/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeviceRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDeviceRepo(pool *pgxpool.Pool, logger *slog.Logger) *DeviceRepo {
	return &DeviceRepo{pool: pool, logger: logger}
}

const deviceColumns = `
	id, owner_id, name,
	exact_lat, exact_lng,
	display_lat, display_lng,
	fov_direction, fov_angle, fov_range_m,
	operational_status,
	share_with_community, require_approval, max_request_radius_m,
	verification_status,
	created_at, updated_at
`

func scanDevice(row pgx.Row) (*domain.RegisteredDevice, error) {
	var d domain.RegisteredDevice
	err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.Name,
		&d.ExactLocation.Lat,
		&d.ExactLocation.Lng,
		&d.DisplayLocation.Lat,
		&d.DisplayLocation.Lng,
		&d.FieldOfView.DirectionDeg,
		&d.FieldOfView.AngleDeg,
		&d.FieldOfView.RangeM,
		&d.OperationalStatus,
		&d.Privacy.ShareWithCommunity,
		&d.Privacy.RequireApproval,
		&d.Privacy.MaxRequestRadiusM,
		&d.Verification,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (p *DeviceRepo) Create(ctx context.Context, device *domain.RegisteredDevice) error {
	const op = "postgres.Device.Create"

	const query = `
		INSERT INTO devices (
			id, owner_id, name,
			exact_lat, exact_lng,
			display_lat, display_lng,
			fov_direction, fov_angle, fov_range_m,
			operational_status,
			share_with_community, require_approval, max_request_radius_m,
			verification_status,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`

	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	if device.CreatedAt.IsZero() {
		device.CreatedAt = time.Now().UTC()
	}
	device.UpdatedAt = device.CreatedAt

	_, err := p.pool.Exec(ctx, query,
		device.ID,
		device.OwnerID,
		device.Name,
		device.ExactLocation.Lat,
		device.ExactLocation.Lng,
		device.DisplayLocation.Lat,
		device.DisplayLocation.Lng,
		device.FieldOfView.DirectionDeg,
		device.FieldOfView.AngleDeg,
		device.FieldOfView.RangeM,
		device.OperationalStatus,
		device.Privacy.ShareWithCommunity,
		device.Privacy.RequireApproval,
		device.Privacy.MaxRequestRadiusM,
		device.Verification,
		device.CreatedAt,
		device.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *DeviceRepo) Get(ctx context.Context, id uuid.UUID) (*domain.RegisteredDevice, error) {
	const op = "postgres.Device.Get"

	query := `SELECT ` + deviceColumns + ` FROM devices WHERE id = $1`

	d, err := scanDevice(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return d, nil
}

func (p *DeviceRepo) Update(ctx context.Context, device *domain.RegisteredDevice) error {
	const op = "postgres.Device.Update"

	const query = `
		UPDATE devices
		SET name                 = $2,
			display_lat          = $3,
			display_lng          = $4,
			fov_direction        = $5,
			fov_angle            = $6,
			fov_range_m          = $7,
			operational_status   = $8,
			share_with_community = $9,
			require_approval     = $10,
			max_request_radius_m = $11,
			verification_status  = $12,
			updated_at           = $13
		WHERE id = $1
	`

	device.UpdatedAt = time.Now().UTC()

	cmd, err := p.pool.Exec(ctx, query,
		device.ID,
		device.Name,
		device.DisplayLocation.Lat,
		device.DisplayLocation.Lng,
		device.FieldOfView.DirectionDeg,
		device.FieldOfView.AngleDeg,
		device.FieldOfView.RangeM,
		device.OperationalStatus,
		device.Privacy.ShareWithCommunity,
		device.Privacy.RequireApproval,
		device.Privacy.MaxRequestRadiusM,
		device.Verification,
		device.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", device.ID.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

func (p *DeviceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Device.Delete"

	const query = `DELETE FROM devices WHERE id = $1`

	cmd, err := p.pool.Exec(ctx, query, id)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

func (p *DeviceRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.RegisteredDevice, error) {
	const op = "postgres.Device.ListByOwner"

	query := `SELECT ` + deviceColumns + ` FROM devices WHERE owner_id = $1 ORDER BY created_at`

	return p.list(ctx, op, query, ownerID)
}

// ListMatchableInBox is the coarse, index-backed pre-filter. The service
// layer re-checks eligibility and exact haversine distance.
func (p *DeviceRepo) ListMatchableInBox(ctx context.Context, box geo.Box) ([]*domain.RegisteredDevice, error) {
	const op = "postgres.Device.ListMatchableInBox"

	query := `
		SELECT ` + deviceColumns + `
		FROM devices
		WHERE share_with_community = TRUE
		  AND operational_status = 'active'
		  AND verification_status = 'approved'
		  AND exact_lat BETWEEN $1 AND $2
		  AND exact_lng BETWEEN $3 AND $4
	`

	return p.list(ctx, op, query, box.MinLat, box.MaxLat, box.MinLng, box.MaxLng)
}

func (p *DeviceRepo) list(ctx context.Context, op, query string, args ...any) ([]*domain.RegisteredDevice, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var devices []*domain.RegisteredDevice
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return devices, nil
}
