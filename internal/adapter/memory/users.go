// Package memory implements in-memory repositories used by the unit
// tests. Entities live in insertion-ordered slices and every query is a
// linear scan; this is deliberate, the package exists for deterministic
// single-threaded test runs, not production throughput.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/service/auth"
	"github.com/google/uuid"
)

var _ auth.UserRepo = (*UserRepo)(nil)

type UserRepo struct {
	mu    sync.Mutex
	items []models.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()

	r.items = append(r.items, *user)
	return user.ID, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].Email == email {
			u := r.items[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			u := r.items[i]
			return &u, nil
		}
	}
	return nil, nil
}
