package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/service/checkin"
	"github.com/google/uuid"
)

var _ checkin.CheckInRepo = (*CheckInRepo)(nil)

type CheckInRepo struct {
	mu    sync.Mutex
	items []models.CheckIn
}

func NewCheckInRepo() *CheckInRepo {
	return &CheckInRepo{}
}

func (r *CheckInRepo) Create(ctx context.Context, c *models.CheckIn) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	r.items = append(r.items, *c)
	return c.ID, nil
}

func (r *CheckInRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			c := r.items[i]
			return &c, nil
		}
	}
	return nil, nil
}

// GetByUserIDOnDate matches any check-in by the user on the same
// calendar date as the given time; time of day is ignored.
func (r *CheckInRepo) GetByUserIDOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].UserID == userID && sameCalendarDay(r.items[i].CreatedAt, date) {
			c := r.items[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CheckInRepo) Save(ctx context.Context, c *models.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == c.ID {
			r.items[i] = *c
			return nil
		}
	}
	return nil
}

func (r *CheckInRepo) ListByUserID(ctx context.Context, userID uuid.UUID, filters models.Filters) ([]models.CheckIn, models.Metadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []models.CheckIn
	for i := range r.items {
		if r.items[i].UserID == userID {
			all = append(all, r.items[i])
		}
	}

	metadata := models.CalculateMetadata(len(all), filters.Page, filters.PageSize)

	start := filters.Offset()
	if start >= len(all) {
		return nil, metadata, nil
	}
	end := min(start+filters.Limit(), len(all))

	return all[start:end], metadata, nil
}

func (r *CheckInRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for i := range r.items {
		if r.items[i].UserID == userID {
			count++
		}
	}
	return count, nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
