package gym

import (
	"context"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
	wrap "github.com/fitpass/gym-checkin-system/pkg/logger/wrapper"
	"github.com/fitpass/gym-checkin-system/pkg/metrics"
)

const serviceName = "gym-service"

// NearbyRadiusKm is the search radius for proximity listings.
// Strictly-less-than comparison: a gym exactly at the boundary is excluded.
const NearbyRadiusKm = 10.0

type GymService struct {
	gymRepo GymRepo
	log     logger.Logger
}

func NewGymService(gymRepo GymRepo, log logger.Logger) *GymService {
	return &GymService{
		gymRepo: gymRepo,
		log:     log,
	}
}

// Create registers a new gym.
func (s *GymService) Create(ctx context.Context, req *models.GymCreateRequest) (*models.Gym, error) {
	ctx = wrap.WithAction(ctx, "gym_create")

	gym := &models.Gym{
		Title:       req.Title,
		Description: req.Description,
		Phone:       req.Phone,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	id, err := s.gymRepo.Create(ctx, gym)
	if err != nil {
		s.log.Error(ctx, "failed to create gym", err)
		return nil, err
	}
	gym.ID = id

	metrics.GymsCreatedTotal.WithLabelValues(serviceName).Inc()

	return gym, nil
}

// Search returns gyms whose title contains the query substring,
// 20 per page, 1-indexed.
func (s *GymService) Search(ctx context.Context, query string, page int) ([]models.Gym, error) {
	return s.gymRepo.SearchMany(ctx, query, page)
}

// FetchNearby returns gyms within the nearby radius of the given point.
func (s *GymService) FetchNearby(ctx context.Context, point models.Coordinate) ([]models.Gym, error) {
	return s.gymRepo.FindManyNearby(ctx, point)
}
