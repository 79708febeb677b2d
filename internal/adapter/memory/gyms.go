package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/service/checkin"
	"github.com/fitpass/gym-checkin-system/internal/service/geo"
	gymsvc "github.com/fitpass/gym-checkin-system/internal/service/gym"
	"github.com/google/uuid"
)

var (
	_ gymsvc.GymRepo      = (*GymRepo)(nil)
	_ checkin.GymProvider = (*GymRepo)(nil)
)

const searchPageSize = 20

type GymRepo struct {
	mu    sync.Mutex
	calc  geo.Calculator
	items []models.Gym
}

func NewGymRepo(calc geo.Calculator) *GymRepo {
	return &GymRepo{calc: calc}
}

func (r *GymRepo) Create(ctx context.Context, gym *models.Gym) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gym.ID == uuid.Nil {
		gym.ID = uuid.New()
	}
	gym.CreatedAt = time.Now()

	r.items = append(r.items, *gym)
	return gym.ID, nil
}

func (r *GymRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Gym, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			g := r.items[i]
			return &g, nil
		}
	}
	return nil, nil
}

// FindManyNearby returns gyms strictly within the nearby radius of the
// given point, in insertion order.
func (r *GymRepo) FindManyNearby(ctx context.Context, point models.Coordinate) ([]models.Gym, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var nearby []models.Gym
	for i := range r.items {
		if r.calc.WithinRadius(point, r.items[i].Coordinate(), gymsvc.NearbyRadiusKm) {
			nearby = append(nearby, r.items[i])
		}
	}
	return nearby, nil
}

// SearchMany returns gyms whose title contains the query substring,
// sliced to 20 per page (1-indexed).
func (r *GymRepo) SearchMany(ctx context.Context, query string, page int) ([]models.Gym, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []models.Gym
	for i := range r.items {
		if strings.Contains(r.items[i].Title, query) {
			matches = append(matches, r.items[i])
		}
	}

	start := (page - 1) * searchPageSize
	if start >= len(matches) {
		return nil, nil
	}
	end := min(start+searchPageSize, len(matches))

	return matches[start:end], nil
}
