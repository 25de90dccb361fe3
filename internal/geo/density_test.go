package geo

import (
	"testing"

	"neighbourcam/internal/domain"

	"github.com/google/uuid"
)

func displayDevice(lat, lng, rangeM float64) *domain.RegisteredDevice {
	return &domain.RegisteredDevice{
		ID:              uuid.New(),
		DisplayLocation: domain.Coordinate{Lat: lat, Lng: lng},
		FieldOfView:     domain.FieldOfView{RangeM: rangeM},
	}
}

func TestAreas_ClustersNearbyDevices(t *testing.T) {
	est := NewDensityEstimator(testObfuscator())
	ref := domain.Coordinate{Lat: 53.3811, Lng: -1.4701}

	// Three devices within 300m of each other, one far away.
	devices := []*domain.RegisteredDevice{
		displayDevice(53.3811, -1.4701, 25),
		displayDevice(53.3816, -1.4701, 25), // ~55m north
		displayDevice(53.3811, -1.4690, 25), // ~70m east
		displayDevice(53.3950, -1.4701, 25), // ~1.5km north
	}

	areas := est.Areas(devices, ref, 2000)
	if len(areas) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(areas))
	}
	if areas[0].DeviceCount != 3 {
		t.Fatalf("first cluster should hold 3 devices, got %d", areas[0].DeviceCount)
	}
	if areas[1].DeviceCount != 1 {
		t.Fatalf("second cluster should hold 1 device, got %d", areas[1].DeviceCount)
	}
}

func TestAreas_Deterministic(t *testing.T) {
	est := NewDensityEstimator(testObfuscator())
	ref := domain.Coordinate{Lat: 53.3811, Lng: -1.4701}
	devices := []*domain.RegisteredDevice{
		displayDevice(53.3811, -1.4701, 25),
		displayDevice(53.3816, -1.4705, 40),
		displayDevice(53.3950, -1.4600, 25),
	}

	a := est.Areas(devices, ref, 2000)
	b := est.Areas(devices, ref, 2000)
	if len(a) != len(b) {
		t.Fatalf("area count differs between runs")
	}
	for i := range a {
		if a[i].Center != b[i].Center || a[i].RadiusM != b[i].RadiusM || a[i].Density != b[i].Density {
			t.Fatalf("area %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestAreas_RespectsBoundRadius(t *testing.T) {
	est := NewDensityEstimator(testObfuscator())
	ref := domain.Coordinate{Lat: 53.3811, Lng: -1.4701}
	devices := []*domain.RegisteredDevice{
		displayDevice(53.3811, -1.4701, 25),
		displayDevice(53.4300, -1.4701, 25), // ~5.4km away
	}

	areas := est.Areas(devices, ref, 2000)
	if len(areas) != 1 {
		t.Fatalf("device beyond bound must be excluded, got %d areas", len(areas))
	}
}

func TestAreas_RadiusAndDensityBounds(t *testing.T) {
	est := NewDensityEstimator(testObfuscator())
	ref := domain.Coordinate{Lat: 53.3811, Lng: -1.4701}

	// 12 devices in a tight cluster with a long-range camera.
	devices := make([]*domain.RegisteredDevice, 0, 12)
	for i := 0; i < 12; i++ {
		devices = append(devices, displayDevice(53.3811+float64(i)*0.0001, -1.4701, 300))
	}

	areas := est.Areas(devices, ref, 2000)
	if len(areas) != 1 {
		t.Fatalf("expected single dense area, got %d", len(areas))
	}
	area := areas[0]
	if area.Density != 1 {
		t.Fatalf("12 devices should cap density at 1, got %v", area.Density)
	}
	if area.RadiusM != maxAreaRadiusM {
		t.Fatalf("radius should clamp at %v, got %v", maxAreaRadiusM, area.RadiusM)
	}
	if len(area.Ring) != 65 {
		t.Fatalf("area ring must be the closed 64-gon, got %d points", len(area.Ring))
	}
}

func TestSamplePoints_StayInsideAreasAndRandomize(t *testing.T) {
	est := NewDensityEstimator(testObfuscator())
	ref := domain.Coordinate{Lat: 53.3811, Lng: -1.4701}
	devices := []*domain.RegisteredDevice{
		displayDevice(53.3811, -1.4701, 25),
		displayDevice(53.3813, -1.4703, 25),
	}
	areas := est.Areas(devices, ref, 2000)

	a, err := est.SamplePoints(areas)
	if err != nil {
		t.Fatalf("SamplePoints: %v", err)
	}
	b, err := est.SamplePoints(areas)
	if err != nil {
		t.Fatalf("SamplePoints: %v", err)
	}

	if len(a) < 3 {
		t.Fatalf("expected at least 2 scatter points plus the center, got %d", len(a))
	}

	for _, p := range a {
		if p.Weight <= 0 || p.Weight > 1 {
			t.Fatalf("weight %v out of (0,1]", p.Weight)
		}
		inside := false
		for _, area := range areas {
			if WithinRadius(area.Center, p.Location, area.RadiusM) {
				inside = true
				break
			}
		}
		if !inside {
			t.Fatalf("sample point %+v outside every area", p)
		}
	}

	// Scatter must differ between calls; only the fixed center points may
	// coincide.
	same := 0
	for i := range a {
		if i < len(b) && a[i].Location == b[i].Location {
			same++
		}
	}
	if same > len(areas) {
		t.Fatalf("scatter repeated between snapshots: %d identical points", same)
	}
}
