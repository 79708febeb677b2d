package dto

import (
	"github.com/fitpass/gym-checkin-system/pkg/validator"
)

type CreateCheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func ValidateNewCheckIn(v *validator.Validator, req *CreateCheckInRequest) {
	ValidateCoordinate(v, req.Latitude, req.Longitude)
}
