package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"neighbourcam/internal/domain"
	"neighbourcam/internal/geo"
	"neighbourcam/pkg/e"

	"github.com/google/uuid"
)

// DeviceService handles camera registration and the owner-facing device
// operations. Every write that would make a location publicly visible goes
// through the obfuscator first; if no safe randomness is available the write
// fails closed rather than leaking an exact coordinate.
type DeviceService struct {
	devices    DeviceStore
	markers    MarkerStore
	obfuscator *geo.Obfuscator
	radiusM    float64
	markerTTL  time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

func NewDeviceService(
	devices DeviceStore,
	markers MarkerStore,
	obfuscator *geo.Obfuscator,
	obfuscationRadiusM float64,
	markerTTL time.Duration,
	logger *slog.Logger,
) *DeviceService {
	return &DeviceService{
		devices:    devices,
		markers:    markers,
		obfuscator: obfuscator,
		radiusM:    obfuscationRadiusM,
		markerTTL:  markerTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *DeviceService) Register(ctx context.Context, ownerID uuid.UUID, in domain.RegisterDeviceRequest) (*domain.RegisteredDevice, error) {
	const op = "service.Device.Register"

	if !in.Location.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	display, err := s.obfuscator.Obfuscate(in.Location, s.radiusM)
	if err != nil {
		// Without obfuscation the device could only ever be stored with its
		// exact location on show, so registration is refused outright.
		return nil, fmt.Errorf("%s: cannot obfuscate location: %w", op, err)
	}

	now := s.now()
	device := &domain.RegisteredDevice{
		ID:                uuid.New(),
		OwnerID:           ownerID,
		Name:              in.Name,
		ExactLocation:     in.Location,
		DisplayLocation:   display,
		FieldOfView:       in.FieldOfView,
		OperationalStatus: domain.DeviceActive,
		Privacy:           in.Privacy,
		Verification:      domain.VerificationUnsubmitted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.devices.Create(ctx, device); err != nil {
		return nil, e.Wrap(op, err)
	}

	s.logger.Info("device registered",
		slog.String("device_id", device.ID.String()),
		slog.String("owner_id", ownerID.String()),
		slog.Bool("shared", device.Privacy.ShareWithCommunity))
	return device, nil
}

// RegenerateDisplayLocation draws a fresh display coordinate for the device,
// same radius bound, owner-only.
func (s *DeviceService) RegenerateDisplayLocation(ctx context.Context, deviceID, actorID uuid.UUID) (domain.Coordinate, error) {
	const op = "service.Device.RegenerateDisplayLocation"

	device, err := s.devices.Get(ctx, deviceID)
	if err != nil {
		return domain.Coordinate{}, e.Wrap(op, err)
	}
	if device.OwnerID != actorID {
		return domain.Coordinate{}, fmt.Errorf("%s: only the owner may regenerate: %w", op, e.ErrForbidden)
	}

	display, err := s.obfuscator.Obfuscate(device.ExactLocation, s.radiusM)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%s: %w", op, err)
	}

	device.DisplayLocation = display
	device.UpdatedAt = s.now()
	if err := s.devices.Update(ctx, device); err != nil {
		return domain.Coordinate{}, e.Wrap(op, err)
	}
	return display, nil
}

func (s *DeviceService) Update(ctx context.Context, deviceID, actorID uuid.UUID, in domain.UpdateDeviceRequest) (*domain.RegisteredDevice, error) {
	const op = "service.Device.Update"

	device, err := s.devices.Get(ctx, deviceID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if device.OwnerID != actorID {
		return nil, fmt.Errorf("%s: %w", op, e.ErrForbidden)
	}

	if in.Name != nil {
		device.Name = *in.Name
	}
	if in.OperationalStatus != nil {
		device.OperationalStatus = *in.OperationalStatus
	}
	if in.Privacy != nil {
		device.Privacy = *in.Privacy
	}
	device.UpdatedAt = s.now()

	if err := s.devices.Update(ctx, device); err != nil {
		return nil, e.Wrap(op, err)
	}
	return device, nil
}

// Delete removes a device. Owners may delete their own; admin deletion comes
// through with admin=true.
func (s *DeviceService) Delete(ctx context.Context, deviceID, actorID uuid.UUID, admin bool) error {
	const op = "service.Device.Delete"

	device, err := s.devices.Get(ctx, deviceID)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !admin && device.OwnerID != actorID {
		return fmt.Errorf("%s: %w", op, e.ErrForbidden)
	}
	if err := s.devices.Delete(ctx, deviceID); err != nil {
		return e.Wrap(op, err)
	}
	s.logger.Info("device deleted",
		slog.String("device_id", deviceID.String()), slog.Bool("admin", admin))
	return nil
}

func (s *DeviceService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.RegisteredDevice, error) {
	return s.devices.ListByOwner(ctx, ownerID)
}

// SetVerification records the outcome of the (external) verification flow.
// Admin-only; unverified devices are never matched.
func (s *DeviceService) SetVerification(ctx context.Context, deviceID uuid.UUID, status domain.VerificationStatus) error {
	const op = "service.Device.SetVerification"

	switch status {
	case domain.VerificationUnsubmitted, domain.VerificationPending, domain.VerificationApproved,
		domain.VerificationRejected, domain.VerificationRequiresInfo:
	default:
		return fmt.Errorf("%s: unknown verification status %q: %w", op, status, e.ErrInvalidInput)
	}

	device, err := s.devices.Get(ctx, deviceID)
	if err != nil {
		return e.Wrap(op, err)
	}
	device.Verification = status
	device.UpdatedAt = s.now()
	if err := s.devices.Update(ctx, device); err != nil {
		return e.Wrap(op, err)
	}
	s.logger.Info("device verification updated",
		slog.String("device_id", deviceID.String()), slog.String("status", string(status)))
	return nil
}

// PlaceMarker registers a 14-day "I have footage" marker. Markers expire by
// filtering, are never regenerated and carry no field of view.
func (s *DeviceService) PlaceMarker(ctx context.Context, ownerID uuid.UUID, in domain.PlaceMarkerRequest) (*domain.TemporaryMarker, error) {
	const op = "service.Device.PlaceMarker"

	if !in.Location.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	display, err := s.obfuscator.Obfuscate(in.Location, s.radiusM)
	if err != nil {
		return nil, fmt.Errorf("%s: cannot obfuscate location: %w", op, err)
	}

	now := s.now()
	marker := &domain.TemporaryMarker{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		DeviceType:      in.DeviceType,
		ExactLocation:   in.Location,
		DisplayLocation: display,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.markerTTL),
	}
	if err := s.markers.Create(ctx, marker); err != nil {
		return nil, e.Wrap(op, err)
	}

	s.logger.Info("temporary marker placed",
		slog.String("marker_id", marker.ID.String()),
		slog.String("device_type", marker.DeviceType))
	return marker, nil
}
