package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"neighbourcam/internal/domain"
	"neighbourcam/internal/geo"
	"neighbourcam/pkg/e"
)

// Matcher finds every eligible camera and temporary marker within a radius of
// an incident. Distance checks run against exact (non-obfuscated) locations.
// The result is a snapshot: devices registered later are never added to a
// request retroactively.
type Matcher struct {
	devices DeviceStore
	markers MarkerStore
	logger  *slog.Logger
	now     func() time.Time
}

func NewMatcher(devices DeviceStore, markers MarkerStore, logger *slog.Logger) *Matcher {
	return &Matcher{
		devices: devices,
		markers: markers,
		logger:  logger,
		now:     time.Now,
	}
}

func (m *Matcher) FindCandidates(ctx context.Context, incident domain.Coordinate, radiusMeters float64) (*CandidateSet, error) {
	const op = "service.Matcher.FindCandidates"

	if !incident.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidRange)
	}

	box := geo.BoundingBox(incident, radiusMeters)
	now := m.now()

	devices, err := m.devices.ListMatchableInBox(ctx, box)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	markers, err := m.markers.ListActiveInBox(ctx, box, now)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	set := &CandidateSet{}
	for _, d := range devices {
		// The store pre-filters eligibility; re-check here so correctness
		// never depends on the store's query shape.
		if !d.Matchable() {
			continue
		}
		dist := geo.DistanceMeters(incident, d.ExactLocation)
		if dist > radiusMeters {
			continue
		}
		// A device owner can cap how far away an incident may be and still
		// reach them.
		if d.Privacy.MaxRequestRadiusM > 0 && dist > d.Privacy.MaxRequestRadiusM {
			continue
		}
		set.Devices = append(set.Devices, d)
	}
	for _, mk := range markers {
		if mk.Expired(now) {
			continue
		}
		if geo.DistanceMeters(incident, mk.ExactLocation) > radiusMeters {
			continue
		}
		set.Markers = append(set.Markers, mk)
	}

	m.logger.Debug("candidate match done",
		slog.Int("devices", len(set.Devices)),
		slog.Int("markers", len(set.Markers)),
		slog.Float64("radius_m", radiusMeters))

	return set, nil
}
