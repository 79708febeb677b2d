package dto

import (
	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/pkg/validator"
)

type CreateGymRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

func (r *CreateGymRequest) ToModel() *models.GymCreateRequest {
	return &models.GymCreateRequest{
		Title:       r.Title,
		Description: r.Description,
		Phone:       r.Phone,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

func ValidateNewGym(v *validator.Validator, gym *CreateGymRequest) {
	v.Check(gym.Title != "", "title", "must be provided")
	v.Check(len(gym.Title) <= 500, "title", "must not be more than 500 bytes long")

	ValidateCoordinate(v, gym.Latitude, gym.Longitude)
}

// ValidateCoordinate checks that a latitude/longitude pair is within
// the valid decimal-degree ranges.
func ValidateCoordinate(v *validator.Validator, latitude, longitude float64) {
	v.Check(latitude >= -90 && latitude <= 90, "latitude", "must be between -90 and 90")
	v.Check(longitude >= -180 && longitude <= 180, "longitude", "must be between -180 and 180")
}
