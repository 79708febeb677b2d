package geo

import (
	"math"
	"testing"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
)

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	calc := New()

	points := []models.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: -27.2092052, Longitude: -49.6401091},
		{Latitude: 89.9, Longitude: 179.9},
	}

	for _, p := range points {
		if d := calc.DistanceKm(p, p); d != 0 {
			t.Errorf("DistanceKm(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	calc := New()

	a := models.Coordinate{Latitude: -27.2092052, Longitude: -49.6401091}
	b := models.Coordinate{Latitude: -27.0610928, Longitude: -49.5229501}

	if d1, d2 := calc.DistanceKm(a, b), calc.DistanceKm(b, a); d1 != d2 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	calc := New()

	// 0.2 degrees of longitude on the equator is ~22.24 km
	a := models.Coordinate{Latitude: 0, Longitude: 0}
	b := models.Coordinate{Latitude: 0, Longitude: 0.2}

	d := calc.DistanceKm(a, b)
	if math.Abs(d-22.24) > 0.05 {
		t.Errorf("DistanceKm = %v, want ~22.24", d)
	}
}

func TestDistanceKm_Antipodal(t *testing.T) {
	calc := New()

	a := models.Coordinate{Latitude: 0, Longitude: 0}
	b := models.Coordinate{Latitude: 0, Longitude: 180}

	d := calc.DistanceKm(a, b)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		t.Fatalf("antipodal distance must be finite, got %v", d)
	}
	// half the Earth's circumference at the mean radius
	if math.Abs(d-math.Pi*earthRadiusKm) > 0.01 {
		t.Errorf("DistanceKm = %v, want ~%v", d, math.Pi*earthRadiusKm)
	}
}

func TestWithinRadius(t *testing.T) {
	calc := New()

	center := models.Coordinate{Latitude: 0, Longitude: 0}
	near := models.Coordinate{Latitude: 0, Longitude: 0.045}  // ~5 km
	far := models.Coordinate{Latitude: 0, Longitude: 0.135}   // ~15 km

	if !calc.WithinRadius(center, near, 10) {
		t.Error("point ~5 km away should be within a 10 km radius")
	}
	if calc.WithinRadius(center, far, 10) {
		t.Error("point ~15 km away should not be within a 10 km radius")
	}
}
