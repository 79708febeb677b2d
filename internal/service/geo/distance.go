package geo

import (
	"math"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
)

const (
	// Earth mean radius
	earthRadiusKm = 6371.0
)

type Calculator interface {
	DistanceKm(a, b models.Coordinate) float64
	WithinRadius(a, b models.Coordinate, radiusKm float64) bool
}

type CalculatorImpl struct{}

func New() *CalculatorImpl {
	return &CalculatorImpl{}
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// DistanceKm computes the great-circle distance between two geographic
// points using the haversine formula. Inputs are decimal degrees, output
// is kilometers. Symmetric; zero for identical points; well-defined for
// antipodal points (atan2 never divides by zero).
func (c *CalculatorImpl) DistanceKm(a, b models.Coordinate) float64 {
	lat1Rad := degreesToRadians(a.Latitude)
	lon1Rad := degreesToRadians(a.Longitude)
	lat2Rad := degreesToRadians(b.Latitude)
	lon2Rad := degreesToRadians(b.Longitude)

	deltaLat := lat2Rad - lat1Rad
	deltaLon := lon2Rad - lon1Rad

	h := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Pow(math.Sin(deltaLon/2), 2)

	angle := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * angle
}

// WithinRadius reports whether b lies strictly within radiusKm of a.
func (c *CalculatorImpl) WithinRadius(a, b models.Coordinate, radiusKm float64) bool {
	return c.DistanceKm(a, b) < radiusKm
}
