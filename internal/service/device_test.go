package service_test

import (
	"context"
	"errors"
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

func newDeviceService(ctrl *gomock.Controller) (*service.DeviceService, *mock_service.MockDeviceStore, *mock_service.MockMarkerStore) {
	devices := mock_service.NewMockDeviceStore(ctrl)
	markers := mock_service.NewMockMarkerStore(ctrl)
	svc := service.NewDeviceService(
		devices, markers,
		geo.NewObfuscator(testLogger, 50),
		50, 14*24*time.Hour, testLogger,
	)
	return svc, devices, markers
}

func registerInput() domain.RegisterDeviceRequest {
	return domain.RegisterDeviceRequest{
		Name:        "front door cam",
		Location:    incident,
		FieldOfView: domain.FieldOfView{DirectionDeg: 180, AngleDeg: 90, RangeM: 25},
		Privacy:     domain.PrivacySettings{ShareWithCommunity: true},
	}
}

func TestDevice_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, devices, _ := newDeviceService(ctrl)
	owner := uuid.New()

	devices.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	device, err := svc.Register(context.Background(), owner, registerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if device.OwnerID != owner || device.ID == uuid.Nil {
		t.Errorf("identity fields not set: %+v", device)
	}
	if device.OperationalStatus != domain.DeviceActive {
		t.Errorf("new device status = %s, want active", device.OperationalStatus)
	}
	if device.Verification != domain.VerificationUnsubmitted {
		t.Errorf("new device verification = %s, want unsubmitted", device.Verification)
	}
	if device.DisplayLocation == device.ExactLocation {
		t.Errorf("display location must differ from the exact one")
	}
	if d := geo.DistanceMeters(device.ExactLocation, device.DisplayLocation); d > 50+0.05 {
		t.Errorf("display location %.2fm away, radius is 50m", d)
	}
}

func TestDevice_Register_InvalidLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newDeviceService(ctrl)

	in := registerInput()
	in.Location = domain.Coordinate{Lat: 0, Lng: 181}
	if _, err := svc.Register(context.Background(), uuid.New(), in); !errors.Is(err, e.ErrInvalidCoordinates) {
		t.Fatalf("got %v, want ErrInvalidCoordinates", err)
	}
}

func TestDevice_RegenerateDisplayLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, devices, _ := newDeviceService(ctrl)
	device := matchableDevice(incident)
	before := device.DisplayLocation

	devices.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)
	devices.EXPECT().Update(gomock.Any(), device).Return(nil)

	display, err := svc.RegenerateDisplayLocation(context.Background(), device.ID, device.OwnerID)
	if err != nil {
		t.Fatalf("RegenerateDisplayLocation: %v", err)
	}
	if display == before {
		t.Errorf("display location did not change")
	}
	if d := geo.DistanceMeters(device.ExactLocation, display); d > 50+0.05 {
		t.Errorf("new display location %.2fm away, radius is 50m", d)
	}

	devices.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)
	if _, err := svc.RegenerateDisplayLocation(context.Background(), device.ID, uuid.New()); !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestDevice_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, devices, _ := newDeviceService(ctrl)
	device := matchableDevice(incident)

	name := "side alley cam"
	status := domain.DeviceOffline
	devices.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)
	devices.EXPECT().Update(gomock.Any(), device).Return(nil)

	got, err := svc.Update(context.Background(), device.ID, device.OwnerID, domain.UpdateDeviceRequest{
		Name:              &name,
		OperationalStatus: &status,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != name || got.OperationalStatus != domain.DeviceOffline {
		t.Errorf("updated device = %+v", got)
	}
	// Fields not in the patch stay put.
	if !got.Privacy.ShareWithCommunity {
		t.Errorf("privacy must be untouched when absent from the patch")
	}

	devices.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)
	if _, err := svc.Update(context.Background(), device.ID, uuid.New(), domain.UpdateDeviceRequest{Name: &name}); !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestDevice_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, devices, _ := newDeviceService(ctrl)
	device := matchableDevice(incident)

	devices.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)
	if err := svc.Delete(context.Background(), device.ID, uuid.New(), false); !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("stranger delete: got %v, want ErrForbidden", err)
	}

	devices.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)
	devices.EXPECT().Delete(gomock.Any(), device.ID).Return(nil)
	if err := svc.Delete(context.Background(), device.ID, device.OwnerID, false); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	// Admin path skips the ownership check.
	devices.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)
	devices.EXPECT().Delete(gomock.Any(), device.ID).Return(nil)
	if err := svc.Delete(context.Background(), device.ID, uuid.Nil, true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestDevice_SetVerification(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, devices, _ := newDeviceService(ctrl)
	device := matchableDevice(incident)
	device.Verification = domain.VerificationPending

	devices.EXPECT().Get(gomock.Any(), device.ID).Return(device, nil)
	devices.EXPECT().Update(gomock.Any(), device).Return(nil)
	if err := svc.SetVerification(context.Background(), device.ID, domain.VerificationApproved); err != nil {
		t.Fatalf("SetVerification: %v", err)
	}
	if device.Verification != domain.VerificationApproved {
		t.Errorf("verification = %s, want approved", device.Verification)
	}

	if err := svc.SetVerification(context.Background(), device.ID, "vouched"); !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestDevice_PlaceMarker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, markers := newDeviceService(ctrl)
	owner := uuid.New()

	markers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	marker, err := svc.PlaceMarker(context.Background(), owner, domain.PlaceMarkerRequest{
		DeviceType: "dashcam",
		Location:   incident,
	})
	if err != nil {
		t.Fatalf("PlaceMarker: %v", err)
	}
	if marker.OwnerID != owner || marker.DeviceType != "dashcam" {
		t.Errorf("marker = %+v", marker)
	}
	if got := marker.ExpiresAt.Sub(marker.CreatedAt); got != 14*24*time.Hour {
		t.Errorf("marker TTL = %s, want 336h", got)
	}
	if d := geo.DistanceMeters(marker.ExactLocation, marker.DisplayLocation); d > 50+0.05 {
		t.Errorf("marker display location %.2fm away, radius is 50m", d)
	}
}
