package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"neighbourcam/internal/domain"
	"neighbourcam/internal/geo"
	"neighbourcam/internal/service"
	mock_service "neighbourcam/internal/service/mocks"
	"neighbourcam/pkg/e"
)

var (
	incident   = domain.Coordinate{Lat: 53.3811, Lng: -1.4701}
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// northOf returns a coordinate roughly meters north of c.
func northOf(c domain.Coordinate, meters float64) domain.Coordinate {
	return domain.Coordinate{Lat: c.Lat + meters/111320.0, Lng: c.Lng}
}

func matchableDevice(exact domain.Coordinate) *domain.RegisteredDevice {
	return &domain.RegisteredDevice{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		Name:          "garden cam",
		ExactLocation: exact,
		// Display location deliberately far off; matching must ignore it.
		DisplayLocation:   northOf(exact, 5000),
		FieldOfView:       domain.FieldOfView{AngleDeg: 90, RangeM: 25},
		OperationalStatus: domain.DeviceActive,
		Privacy:           domain.PrivacySettings{ShareWithCommunity: true},
		Verification:      domain.VerificationApproved,
	}
}

func TestMatcher_RadiusBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	near := matchableDevice(northOf(incident, 50))
	mid := matchableDevice(northOf(incident, 150))
	far := matchableDevice(northOf(incident, 250))

	devices := mock_service.NewMockDeviceStore(ctrl)
	markers := mock_service.NewMockMarkerStore(ctrl)
	devices.EXPECT().ListMatchableInBox(gomock.Any(), gomock.Any()).
		Return([]*domain.RegisteredDevice{near, mid, far}, nil)
	markers.EXPECT().ListActiveInBox(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	m := service.NewMatcher(devices, markers, testLogger)

	set, err := m.FindCandidates(context.Background(), incident, 200)
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(set.Devices) != 2 {
		t.Fatalf("expected devices at 50m and 150m only, got %d", len(set.Devices))
	}
	for _, d := range set.Devices {
		if d.ID == far.ID {
			t.Fatalf("device at 250m must be excluded from a 200m search")
		}
	}
}

func TestMatcher_ExactlyAtRadiusIsIncluded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	edge := matchableDevice(northOf(incident, 200))
	radius := geo.DistanceMeters(incident, edge.ExactLocation)

	devices := mock_service.NewMockDeviceStore(ctrl)
	markers := mock_service.NewMockMarkerStore(ctrl)
	devices.EXPECT().ListMatchableInBox(gomock.Any(), gomock.Any()).
		Return([]*domain.RegisteredDevice{edge}, nil).Times(2)
	markers.EXPECT().ListActiveInBox(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).Times(2)

	m := service.NewMatcher(devices, markers, testLogger)

	set, err := m.FindCandidates(context.Background(), incident, radius)
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(set.Devices) != 1 {
		t.Fatalf("a device exactly at the radius boundary must be included")
	}

	set, err = m.FindCandidates(context.Background(), incident, radius-0.5)
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(set.Devices) != 0 {
		t.Fatalf("a device just past the radius must be excluded")
	}
}

func TestMatcher_EligibilityRechecked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ok := matchableDevice(northOf(incident, 50))

	offline := matchableDevice(northOf(incident, 50))
	offline.OperationalStatus = domain.DeviceOffline

	private := matchableDevice(northOf(incident, 50))
	private.Privacy.ShareWithCommunity = false

	unverified := matchableDevice(northOf(incident, 50))
	unverified.Verification = domain.VerificationPending

	capped := matchableDevice(northOf(incident, 150))
	capped.Privacy.MaxRequestRadiusM = 100

	devices := mock_service.NewMockDeviceStore(ctrl)
	markers := mock_service.NewMockMarkerStore(ctrl)
	// The store query may return anything; the matcher must filter again.
	devices.EXPECT().ListMatchableInBox(gomock.Any(), gomock.Any()).
		Return([]*domain.RegisteredDevice{ok, offline, private, unverified, capped}, nil)
	markers.EXPECT().ListActiveInBox(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	m := service.NewMatcher(devices, markers, testLogger)

	set, err := m.FindCandidates(context.Background(), incident, 200)
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(set.Devices) != 1 || set.Devices[0].ID != ok.ID {
		t.Fatalf("only the fully eligible device should match, got %d", len(set.Devices))
	}
}

func TestMatcher_MarkersFiltered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now()
	active := &domain.TemporaryMarker{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		DeviceType:    "dashcam",
		ExactLocation: northOf(incident, 100),
		ExpiresAt:     now.Add(time.Hour),
	}
	expired := &domain.TemporaryMarker{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		DeviceType:    "doorbell",
		ExactLocation: northOf(incident, 100),
		ExpiresAt:     now.Add(-time.Hour),
	}
	outOfRange := &domain.TemporaryMarker{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		DeviceType:    "mobile",
		ExactLocation: northOf(incident, 300),
		ExpiresAt:     now.Add(time.Hour),
	}

	devices := mock_service.NewMockDeviceStore(ctrl)
	markers := mock_service.NewMockMarkerStore(ctrl)
	devices.EXPECT().ListMatchableInBox(gomock.Any(), gomock.Any()).Return(nil, nil)
	markers.EXPECT().ListActiveInBox(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*domain.TemporaryMarker{active, expired, outOfRange}, nil)

	m := service.NewMatcher(devices, markers, testLogger)

	set, err := m.FindCandidates(context.Background(), incident, 200)
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(set.Markers) != 1 || set.Markers[0].ID != active.ID {
		t.Fatalf("only the active in-range marker should match, got %d", len(set.Markers))
	}
}

func TestMatcher_InvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := service.NewMatcher(
		mock_service.NewMockDeviceStore(ctrl),
		mock_service.NewMockMarkerStore(ctrl),
		testLogger,
	)

	if _, err := m.FindCandidates(context.Background(), domain.Coordinate{Lat: 91, Lng: 0}, 200); err == nil {
		t.Fatalf("latitude out of range must fail")
	}
	if _, err := m.FindCandidates(context.Background(), incident, 0); err == nil {
		t.Fatalf("non-positive radius must fail")
	}
	_, err := m.FindCandidates(context.Background(), incident, -5)
	if !errors.Is(err, e.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got: %v", err)
	}
}
