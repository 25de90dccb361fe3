package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied by deploy tooling and by the integration test harness.
// The btree indexes on the coordinate columns back the bounding-box
// pre-filter; exact distance is always confirmed in the service layer.
const Schema = `
CREATE TABLE IF NOT EXISTS devices (
    id                   UUID PRIMARY KEY,
    owner_id             UUID NOT NULL,
    name                 TEXT NOT NULL,
    exact_lat            DOUBLE PRECISION NOT NULL,
    exact_lng            DOUBLE PRECISION NOT NULL,
    display_lat          DOUBLE PRECISION NOT NULL,
    display_lng          DOUBLE PRECISION NOT NULL,
    fov_direction        DOUBLE PRECISION NOT NULL DEFAULT 0,
    fov_angle            DOUBLE PRECISION NOT NULL DEFAULT 90,
    fov_range_m          DOUBLE PRECISION NOT NULL DEFAULT 25,
    operational_status   TEXT NOT NULL DEFAULT 'active',
    share_with_community BOOLEAN NOT NULL DEFAULT FALSE,
    require_approval     BOOLEAN NOT NULL DEFAULT TRUE,
    max_request_radius_m DOUBLE PRECISION NOT NULL DEFAULT 0,
    verification_status  TEXT NOT NULL DEFAULT 'unsubmitted',
    created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_devices_owner ON devices (owner_id);
CREATE INDEX IF NOT EXISTS idx_devices_exact ON devices (exact_lat, exact_lng);

CREATE TABLE IF NOT EXISTS markers (
    id          UUID PRIMARY KEY,
    owner_id    UUID NOT NULL,
    device_type TEXT NOT NULL,
    exact_lat   DOUBLE PRECISION NOT NULL,
    exact_lng   DOUBLE PRECISION NOT NULL,
    display_lat DOUBLE PRECISION NOT NULL,
    display_lng DOUBLE PRECISION NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    expires_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_markers_exact ON markers (exact_lat, exact_lng);
CREATE INDEX IF NOT EXISTS idx_markers_expires ON markers (expires_at);

CREATE TABLE IF NOT EXISTS footage_requests (
    id                UUID PRIMARY KEY,
    requester_id      UUID NOT NULL,
    incident_lat      DOUBLE PRECISION NOT NULL,
    incident_lng      DOUBLE PRECISION NOT NULL,
    incident_type     TEXT NOT NULL,
    search_radius_m   DOUBLE PRECISION NOT NULL,
    priority          TEXT NOT NULL,
    status            TEXT NOT NULL,
    target_device_ids JSONB NOT NULL DEFAULT '[]',
    responses         JSONB NOT NULL DEFAULT '[]',
    status_history    JSONB NOT NULL DEFAULT '[]',
    created_at        TIMESTAMPTZ NOT NULL,
    expires_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_requests_requester ON footage_requests (requester_id);
CREATE INDEX IF NOT EXISTS idx_requests_status_expires ON footage_requests (status, expires_at);
CREATE INDEX IF NOT EXISTS idx_requests_targets ON footage_requests USING GIN (target_device_ids);

CREATE TABLE IF NOT EXISTS user_quotas (
    user_id      UUID PRIMARY KEY,
    weekly_count INTEGER NOT NULL DEFAULT 0,
    weekly_limit INTEGER NOT NULL DEFAULT 3,
    reset_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS archived_requests (
    id                UUID PRIMARY KEY,
    requester_id      UUID NOT NULL,
    incident_lat      DOUBLE PRECISION NOT NULL,
    incident_lng      DOUBLE PRECISION NOT NULL,
    incident_type     TEXT NOT NULL,
    search_radius_m   DOUBLE PRECISION NOT NULL,
    priority          TEXT NOT NULL,
    status            TEXT NOT NULL,
    target_device_ids JSONB NOT NULL DEFAULT '[]',
    responses         JSONB NOT NULL DEFAULT '[]',
    status_history    JSONB NOT NULL DEFAULT '[]',
    created_at        TIMESTAMPTZ NOT NULL,
    expires_at        TIMESTAMPTZ NOT NULL,
    archived_at       TIMESTAMPTZ NOT NULL,
    archived_reason   TEXT NOT NULL,
    original_id       UUID NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_archived_requester ON archived_requests (requester_id);
`

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
