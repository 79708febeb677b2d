package checkin

import (
	"context"
	"time"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/google/uuid"
)

type CheckInRepo interface {
	Create(ctx context.Context, checkIn *models.CheckIn) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.CheckIn, error)
	// GetByUserIDOnDate matches any check-in the user made on the same
	// calendar date, ignoring time of day.
	GetByUserIDOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.CheckIn, error)
	Save(ctx context.Context, checkIn *models.CheckIn) error
	ListByUserID(ctx context.Context, userID uuid.UUID, filters models.Filters) ([]models.CheckIn, models.Metadata, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int, error)
}

type GymProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Gym, error)
}

// EventPublisher pushes check-in events to the message broker.
type EventPublisher interface {
	PublishCheckInCreated(ctx context.Context, msg models.CheckInCreatedMessage) error
}

// FeedNotifier pushes a new check-in to the gym's live dashboard feed.
type FeedNotifier interface {
	NotifyCheckIn(gymID uuid.UUID, checkIn *models.CheckIn) error
}
