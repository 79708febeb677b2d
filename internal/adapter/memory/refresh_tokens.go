package memory

import (
	"context"
	"sync"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/service/auth"
	"github.com/google/uuid"
)

var _ auth.RefreshTokenRepo = (*RefreshTokenRepo)(nil)

type RefreshTokenRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.RefreshTokenRecord
}

func NewRefreshTokenRepo() *RefreshTokenRepo {
	return &RefreshTokenRepo{
		items: make(map[uuid.UUID]*models.RefreshTokenRecord),
	}
}

func (r *RefreshTokenRepo) Save(ctx context.Context, record *models.RefreshTokenRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *record
	r.items[record.ID] = &cp
	return nil
}

func (r *RefreshTokenRepo) Get(ctx context.Context, id uuid.UUID) (*models.RefreshTokenRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *record
	return &cp, nil
}

func (r *RefreshTokenRepo) MarkRevoked(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record, ok := r.items[id]; ok {
		record.Revoked = true
	}
	return nil
}
