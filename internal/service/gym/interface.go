package gym

import (
	"context"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/google/uuid"
)

type GymRepo interface {
	Create(ctx context.Context, gym *models.Gym) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Gym, error)
	SearchMany(ctx context.Context, query string, page int) ([]models.Gym, error)
	FindManyNearby(ctx context.Context, point models.Coordinate) ([]models.Gym, error)
}
