package geo

import (
	"math"

	"neighbourcam/internal/domain"
)

const (
	earthRadiusM = 6371e3

	// metersPerDegree is the length of one degree of latitude; longitude is
	// additionally scaled by cos(lat). Valid at the sub-kilometre scale this
	// service works at.
	metersPerDegree = 111320.0

	// bearingDeadZoneDeg is roughly one metre of displacement. Below it the
	// bearing is reported as 0 to avoid jitter from near-duplicate points.
	bearingDeadZoneDeg = 0.00001
)

// DistanceMeters returns the great-circle (haversine) distance between two
// coordinates on a spherical-earth approximation.
func DistanceMeters(a, b domain.Coordinate) float64 {
	dLat := deg2rad(b.Lat - a.Lat)
	dLng := deg2rad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusM * c
}

// WithinRadius reports whether point lies within radiusMeters of center.
// The radius is a hard boundary: exactly at the radius is inside.
func WithinRadius(center, point domain.Coordinate, radiusMeters float64) bool {
	return DistanceMeters(center, point) <= radiusMeters
}

// BearingDegrees returns the direction from one point toward another,
// normalized to [0, 360) and quantized to the nearest 2 degrees. Movements
// under about a metre report 0.
func BearingDegrees(from, to domain.Coordinate) float64 {
	dLng := to.Lng - from.Lng
	dLat := to.Lat - from.Lat

	if math.Abs(dLng) < bearingDeadZoneDeg && math.Abs(dLat) < bearingDeadZoneDeg {
		return 0
	}

	angle := math.Atan2(dLng*math.Cos(deg2rad(from.Lat)), dLat) * 180 / math.Pi
	angle = math.Mod(angle+360, 360)

	q := math.Round(angle/2) * 2
	return math.Mod(q, 360)
}

// CirclePolygon approximates a circle as a closed ring of pointCount+1
// coordinates (the first repeated at the end). 64 points is plenty for both
// rendering and overlap analysis.
func CirclePolygon(center domain.Coordinate, radiusMeters float64, pointCount int) []domain.Coordinate {
	if pointCount <= 0 {
		pointCount = 64
	}
	ring := make([]domain.Coordinate, 0, pointCount+1)
	for i := 0; i < pointCount; i++ {
		theta := 2 * math.Pi * float64(i) / float64(pointCount)
		ring = append(ring, offset(center, radiusMeters*math.Cos(theta), radiusMeters*math.Sin(theta)))
	}
	ring = append(ring, ring[0])
	return ring
}

// FOVPolygon builds the cone a camera covers: the apex at location, an arc of
// the given angular width at range distance, closed back to the apex. The
// step count adapts to the angle so narrow cones stay cheap.
func FOVPolygon(location domain.Coordinate, fov domain.FieldOfView) []domain.Coordinate {
	directionRad := deg2rad(fov.DirectionDeg - 90)
	halfAngleRad := deg2rad(fov.AngleDeg / 2)

	steps := int(math.Floor(fov.AngleDeg / 8))
	if steps < 6 {
		steps = 6
	}
	if steps > 16 {
		steps = 16
	}

	ring := make([]domain.Coordinate, 0, steps+3)
	ring = append(ring, location)
	for i := 0; i <= steps; i++ {
		theta := directionRad - halfAngleRad + float64(i)*(2*halfAngleRad)/float64(steps)
		ring = append(ring, offset(location, fov.RangeM*math.Cos(theta), fov.RangeM*math.Sin(theta)))
	}
	ring = append(ring, location)
	return ring
}

// Box is a latitude/longitude bounding box used as a coarse store-level
// pre-filter. Correctness is always confirmed with DistanceMeters afterwards.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// BoundingBox returns the box that encloses the circle around center. The
// longitude span widens with latitude; near the poles it degenerates to the
// full range rather than inverting.
func BoundingBox(center domain.Coordinate, radiusMeters float64) Box {
	dLat := radiusMeters / metersPerDegree
	cosLat := math.Cos(deg2rad(center.Lat))
	dLng := 180.0
	if cosLat > 1e-6 {
		dLng = radiusMeters / (metersPerDegree * cosLat)
	}
	return Box{
		MinLat: center.Lat - dLat,
		MaxLat: center.Lat + dLat,
		MinLng: center.Lng - dLng,
		MaxLng: center.Lng + dLng,
	}
}

// offset shifts a coordinate by dx meters east and dy meters north using the
// flat-earth approximation.
func offset(c domain.Coordinate, dx, dy float64) domain.Coordinate {
	return domain.Coordinate{
		Lat: c.Lat + dy/metersPerDegree,
		Lng: c.Lng + dx/(metersPerDegree*math.Cos(deg2rad(c.Lat))),
	}
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
