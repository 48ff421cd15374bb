package kernel

import (
	"fmt"
	"math"

	"cargo/internal/pkg/errs"
)

// earthRadiusKm is the mean Earth radius used for great-circle distance.
const earthRadiusKm = 6371.0

// GeoPoint is a value object holding a WGS84 coordinate pair. It is used for
// hub positions, courier positions and order pickup origins.
//
// The zero value (0, 0) is treated as "no position known" rather than a point
// in the Gulf of Guinea; Validate rejects it so unset coordinates cannot leak
// into distance ranking.
type GeoPoint struct {
	lat float64
	lon float64
}

// NewGeoPoint creates a GeoPoint after range-checking both coordinates.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	if lat < -90 || lat > 90 {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", lat, -90, 90)
	}
	if lon < -180 || lon > 180 {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", lon, -180, 180)
	}
	return GeoPoint{lat: lat, lon: lon}, nil
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude in decimal degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// IsZero reports whether the point carries no known position.
func (p GeoPoint) IsZero() bool {
	return p.lat == 0 && p.lon == 0
}

// Validate returns an error if the point carries no known position.
func (p GeoPoint) Validate() error {
	if p.IsZero() {
		return errs.NewValueIsRequiredError("geo point")
	}
	return nil
}

// DistanceTo returns the haversine great-circle distance to other in
// kilometers.
func (p GeoPoint) DistanceTo(other GeoPoint) float64 {
	lat1 := p.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - p.lat) * math.Pi / 180
	dLon := (other.lon - p.lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// String renders the point as "lat,lon" for logging.
func (p GeoPoint) String() string {
	return fmt.Sprintf("%f,%f", p.lat, p.lon)
}
