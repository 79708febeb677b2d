package models

import (
	"time"

	"github.com/google/uuid"
)

type CheckIn struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	GymID  uuid.UUID `json:"gym_id"`

	CreatedAt   time.Time  `json:"created_at"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

func (c *CheckIn) IsValidated() bool {
	return c.ValidatedAt != nil
}

type CheckInCreateRequest struct {
	UserID uuid.UUID
	GymID  uuid.UUID
}

// RabbitMQ message published to the checkin_topic exchange after a
// successful check-in.
type CheckInCreatedMessage struct {
	CheckInID uuid.UUID `json:"checkin_id"`
	UserID    uuid.UUID `json:"user_id"`
	GymID     uuid.UUID `json:"gym_id"`
	CreatedAt time.Time `json:"created_at"`
}
