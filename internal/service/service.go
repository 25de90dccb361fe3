package service

import (
	"context"
	"time"

	"neighbourcam/internal/domain"
	"neighbourcam/internal/geo"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

type DeviceStore interface {
	Create(ctx context.Context, device *domain.RegisteredDevice) error
	Get(ctx context.Context, id uuid.UUID) (*domain.RegisteredDevice, error)
	Update(ctx context.Context, device *domain.RegisteredDevice) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.RegisteredDevice, error)
	// ListMatchableInBox is the coarse pre-filter: community-shareable,
	// operationally active, verification-approved devices whose exact
	// location falls inside the box. The matcher confirms with haversine.
	ListMatchableInBox(ctx context.Context, box geo.Box) ([]*domain.RegisteredDevice, error)
}

type MarkerStore interface {
	Create(ctx context.Context, marker *domain.TemporaryMarker) error
	ListActiveInBox(ctx context.Context, box geo.Box, now time.Time) ([]*domain.TemporaryMarker, error)
}

type RequestStore interface {
	// CreateWithQuota inserts the request and consumes one quota slot in a
	// single atomic unit. When the user is at their limit nothing is written
	// and e.ErrQuotaExceeded is returned.
	CreateWithQuota(ctx context.Context, req *domain.FootageRequest, defaultLimit int, now, nextReset time.Time) error
	Get(ctx context.Context, id uuid.UUID) (*domain.FootageRequest, error)
	// Mutate applies fn to the request under a row lock and persists the
	// result, so concurrent slot updates serialize instead of losing writes.
	Mutate(ctx context.Context, id uuid.UUID, fn func(*domain.FootageRequest) error) (*domain.FootageRequest, error)
	ListExpiredPending(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	ListAll(ctx context.Context) ([]*domain.FootageRequest, error)
	ListByRequester(ctx context.Context, userID uuid.UUID) ([]*domain.FootageRequest, error)
	ListTargetingDevices(ctx context.Context, deviceIDs []uuid.UUID) ([]*domain.FootageRequest, error)
}

type QuotaStore interface {
	GetOrInit(ctx context.Context, userID uuid.UUID, defaultLimit int, nextReset time.Time) (*domain.RateLimitRecord, error)
	// ResetIfDue zeroes the counter only if the stored window has ended,
	// reporting whether it did. The advisory read path must use this, never
	// Reset, so it cannot race a concurrent consume.
	ResetIfDue(ctx context.Context, userID uuid.UUID, now, nextReset time.Time) (bool, error)
	// Reset zeroes the weekly counter unconditionally. Admin path.
	Reset(ctx context.Context, userID uuid.UUID, nextReset time.Time) error
	SetLimit(ctx context.Context, userID uuid.UUID, limit int) error
}

type ArchiveStore interface {
	// Move relocates an active request into the archive in one transaction.
	Move(ctx context.Context, id uuid.UUID, reason domain.ArchiveReason, archivedAt time.Time) error
	// Restore is the exact inverse: the record returns to the active store
	// without any archive-only fields.
	Restore(ctx context.Context, id uuid.UUID) (*domain.FootageRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.ArchivedRequest, error)
	ListByRequester(ctx context.Context, userID uuid.UUID) ([]*domain.ArchivedRequest, error)
	Stats(ctx context.Context) (*domain.ArchiveStats, error)
}

// CandidateSet is the point-in-time matching result for one incident.
type CandidateSet struct {
	Devices []*domain.RegisteredDevice
	Markers []*domain.TemporaryMarker
}

func (c *CandidateSet) Empty() bool {
	return len(c.Devices) == 0 && len(c.Markers) == 0
}

type CandidateFinder interface {
	FindCandidates(ctx context.Context, incident domain.Coordinate, radiusMeters float64) (*CandidateSet, error)
}

// Notifier fans out owner notifications. Implementations are fire-and-forget
// relative to request creation.
type Notifier interface {
	RequestCreated(ctx context.Context, req *domain.FootageRequest)
}

type Service struct {
	Devices  *DeviceService
	Requests *LifecycleService
	Quota    *QuotaService
	Archive  *ArchiveService
	Coverage *CoverageService
}

func NewService(
	devices *DeviceService,
	requests *LifecycleService,
	quota *QuotaService,
	archive *ArchiveService,
	coverage *CoverageService,
) *Service {
	return &Service{
		Devices:  devices,
		Requests: requests,
		Quota:    quota,
		Archive:  archive,
		Coverage: coverage,
	}
}
