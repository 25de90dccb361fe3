package geo

import (
	"math"

	"neighbourcam/internal/domain"
)

const (
	// Devices whose display locations fall within this distance of each other
	// are grouped into one density area.
	clusterRadiusM = 300.0

	// Bounds for the rendered radius of a density area.
	minAreaRadiusM = 200.0
	maxAreaRadiusM = 500.0

	// Device count at which an area is considered fully dense.
	fullDensityCount = 8
)

// DensityArea is an anonymized cluster of camera coverage. It carries no
// device identities and is derived from display locations only, so a single
// device's position cannot be backed out of the visualization.
type DensityArea struct {
	Center      domain.Coordinate   `json:"center"`
	RadiusM     float64             `json:"radius_m"`
	Density     float64             `json:"density"` // 0..1
	DeviceCount int                 `json:"device_count"`
	Ring        []domain.Coordinate `json:"ring"`
}

// HeatmapPoint is a weighted sample usable for heatmap rendering.
type HeatmapPoint struct {
	Location domain.Coordinate `json:"location"`
	Weight   float64           `json:"weight"` // 0..1
}

// DensityEstimator aggregates obfuscated device positions into overlapping
// density areas and randomized sample points. It recomputes from the full
// snapshot every time; incremental patching risks stale overlaps.
type DensityEstimator struct {
	entropy *Obfuscator
}

func NewDensityEstimator(entropy *Obfuscator) *DensityEstimator {
	return &DensityEstimator{entropy: entropy}
}

// Areas clusters the devices' display locations within boundRadiusM of ref.
// The result is deterministic for a given input snapshot.
func (d *DensityEstimator) Areas(devices []*domain.RegisteredDevice, ref domain.Coordinate, boundRadiusM float64) []DensityArea {
	inBounds := make([]*domain.RegisteredDevice, 0, len(devices))
	for _, dev := range devices {
		if boundRadiusM <= 0 || WithinRadius(ref, dev.DisplayLocation, boundRadiusM) {
			inBounds = append(inBounds, dev)
		}
	}

	areas := make([]DensityArea, 0, len(inBounds))
	processed := make(map[int]bool, len(inBounds))

	for i, dev := range inBounds {
		if processed[i] {
			continue
		}
		cluster := []*domain.RegisteredDevice{dev}
		processed[i] = true
		for j := i + 1; j < len(inBounds); j++ {
			if processed[j] {
				continue
			}
			if WithinRadius(dev.DisplayLocation, inBounds[j].DisplayLocation, clusterRadiusM) {
				cluster = append(cluster, inBounds[j])
				processed[j] = true
			}
		}

		center := clusterCenter(cluster)
		radius := clusterRadius(cluster)
		areas = append(areas, DensityArea{
			Center:      center,
			RadiusM:     radius,
			Density:     math.Min(1, float64(len(cluster))/fullDensityCount),
			DeviceCount: len(cluster),
			Ring:        CirclePolygon(center, radius, 64),
		})
	}
	return areas
}

// SamplePoints scatters weighted points across the areas for heatmap
// rendering. The scatter is randomized on every call so repeated snapshots
// never reveal a stable pattern around any one device.
func (d *DensityEstimator) SamplePoints(areas []DensityArea) ([]HeatmapPoint, error) {
	points := make([]HeatmapPoint, 0, len(areas)*4)
	for _, area := range areas {
		perArea := int(area.Density * 8)
		if perArea < 2 {
			perArea = 2
		}
		for i := 0; i < perArea; i++ {
			u1, err := d.entropy.randFloat()
			if err != nil {
				return nil, err
			}
			u2, err := d.entropy.randFloat()
			if err != nil {
				return nil, err
			}
			u3, err := d.entropy.randFloat()
			if err != nil {
				return nil, err
			}
			angle := u1 * 2 * math.Pi
			distance := math.Sqrt(u2) * area.RadiusM * 0.9
			points = append(points, HeatmapPoint{
				Location: offset(area.Center, distance*math.Sin(angle), distance*math.Cos(angle)),
				Weight:   area.Density * (0.6 + 0.4*u3),
			})
		}

		u, err := d.entropy.randFloat()
		if err != nil {
			return nil, err
		}
		points = append(points, HeatmapPoint{
			Location: area.Center,
			Weight:   area.Density * (0.8 + 0.2*u),
		})
	}
	return points, nil
}

func clusterCenter(cluster []*domain.RegisteredDevice) domain.Coordinate {
	var lat, lng float64
	for _, dev := range cluster {
		lat += dev.DisplayLocation.Lat
		lng += dev.DisplayLocation.Lng
	}
	n := float64(len(cluster))
	return domain.Coordinate{Lat: lat / n, Lng: lng / n}
}

func clusterRadius(cluster []*domain.RegisteredDevice) float64 {
	maxRange := 0.0
	for _, dev := range cluster {
		if dev.FieldOfView.RangeM > maxRange {
			maxRange = dev.FieldOfView.RangeM
		}
	}
	r := maxRange + 100
	if r < minAreaRadiusM {
		r = minAreaRadiusM
	}
	if r > maxAreaRadiusM {
		r = maxAreaRadiusM
	}
	return r
}
