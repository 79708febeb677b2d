package models

import (
	"time"

	"github.com/google/uuid"
)

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Gym struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Phone       string    `json:"phone,omitempty"`

	// Stored as NUMERIC(9,6) in Postgres. float64 is only the in-process
	// representation; the geofence tolerance is far above float error.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	CreatedAt time.Time `json:"created_at"`
}

func (g *Gym) Coordinate() Coordinate {
	return Coordinate{Latitude: g.Latitude, Longitude: g.Longitude}
}

type GymCreateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}
