package service

import (
	"context"
	"fmt"
	"log/slog"

	"neighbourcam/internal/domain"
	"neighbourcam/internal/geo"
	"neighbourcam/pkg/e"
)

// Default bound for a coverage snapshot around the reference point.
const coverageBoundRadiusM = 2000.0

// CoverageSnapshot is what map clients render: anonymized density areas and a
// randomized heatmap. Nothing in it identifies a device or its exact
// position.
type CoverageSnapshot struct {
	Areas  []geo.DensityArea  `json:"areas"`
	Points []geo.HeatmapPoint `json:"points"`
}

// CoverageService aggregates shared cameras' display locations for
// visualization. Snapshots are recomputed wholesale on every call; there is
// no incremental patching to go stale.
type CoverageService struct {
	devices   DeviceStore
	estimator *geo.DensityEstimator
	logger    *slog.Logger
}

func NewCoverageService(devices DeviceStore, estimator *geo.DensityEstimator, logger *slog.Logger) *CoverageService {
	return &CoverageService{devices: devices, estimator: estimator, logger: logger}
}

func (s *CoverageService) Snapshot(ctx context.Context, ref domain.Coordinate) (*CoverageSnapshot, error) {
	const op = "service.Coverage.Snapshot"

	if !ref.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	devices, err := s.devices.ListMatchableInBox(ctx, geo.BoundingBox(ref, coverageBoundRadiusM))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	areas := s.estimator.Areas(devices, ref, coverageBoundRadiusM)
	points, err := s.estimator.SamplePoints(areas)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	s.logger.Debug("coverage snapshot built",
		slog.Int("devices", len(devices)),
		slog.Int("areas", len(areas)),
		slog.Int("points", len(points)))

	return &CoverageSnapshot{Areas: areas, Points: points}, nil
}
