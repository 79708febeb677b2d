package checkin

import (
	"context"
	"time"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/domain/types"
	"github.com/fitpass/gym-checkin-system/internal/service/geo"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
	wrap "github.com/fitpass/gym-checkin-system/pkg/logger/wrapper"
	"github.com/fitpass/gym-checkin-system/pkg/metrics"
	"github.com/google/uuid"
)

const serviceName = "checkin-service"

const (
	// MaxDistanceKm is the geofence around a gym. A check-in farther
	// than this is rejected; exactly at the boundary is allowed.
	MaxDistanceKm = 0.1

	// ValidationWindow is how long after creation a check-in can still
	// be validated by an admin.
	ValidationWindow = 20 * time.Minute
)

type CheckInService struct {
	checkInRepo CheckInRepo
	gyms        GymProvider
	calc        geo.Calculator
	publisher   EventPublisher
	feed        FeedNotifier
	log         logger.Logger

	now func() time.Time
}

func NewCheckInService(checkInRepo CheckInRepo, gyms GymProvider, calc geo.Calculator, publisher EventPublisher, feed FeedNotifier, log logger.Logger) *CheckInService {
	return &CheckInService{
		checkInRepo: checkInRepo,
		gyms:        gyms,
		calc:        calc,
		publisher:   publisher,
		feed:        feed,
		log:         log,
		now:         time.Now,
	}
}

// CheckIn performs a geofenced check-in, capped at one per user per
// calendar day. The geofence check runs before the daily-cap check, so
// a too-far attempt is reported as such even if the user already
// checked in today.
func (s *CheckInService) CheckIn(ctx context.Context, userID, gymID uuid.UUID, userLat, userLng float64) (*models.CheckIn, error) {
	ctx = wrap.WithAction(ctx, "checkin_create")
	ctx = wrap.WithUserID(ctx, userID.String())
	ctx = wrap.WithGymID(ctx, gymID.String())

	gym, err := s.gyms.GetByID(ctx, gymID)
	if err != nil {
		return nil, err
	}
	if gym == nil {
		return nil, types.ErrResourceNotFound
	}

	distance := s.calc.DistanceKm(
		models.Coordinate{Latitude: userLat, Longitude: userLng},
		gym.Coordinate(),
	)
	if distance > MaxDistanceKm {
		metrics.RecordCheckInRejected(serviceName, "max_distance")
		return nil, types.ErrMaxDistance
	}

	// The check-then-create below is not atomic; the persistent store
	// backs it with a unique index on (user_id, checkin_date).
	existing, err := s.checkInRepo.GetByUserIDOnDate(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.RecordCheckInRejected(serviceName, "daily_limit")
		return nil, types.ErrMaxNumberOfCheckIns
	}

	checkIn := &models.CheckIn{
		UserID: userID,
		GymID:  gymID,
	}

	id, err := s.checkInRepo.Create(ctx, checkIn)
	if err != nil {
		return nil, err
	}
	checkIn.ID = id

	metrics.CheckInsTotal.WithLabelValues(serviceName).Inc()

	s.announce(ctx, checkIn)

	return checkIn, nil
}

// announce publishes the created check-in to the broker and the gym's
// live feed. Both are best-effort: the check-in is already persisted.
func (s *CheckInService) announce(ctx context.Context, checkIn *models.CheckIn) {
	if s.publisher != nil {
		msg := models.CheckInCreatedMessage{
			CheckInID: checkIn.ID,
			UserID:    checkIn.UserID,
			GymID:     checkIn.GymID,
			CreatedAt: checkIn.CreatedAt,
		}
		if err := s.publisher.PublishCheckInCreated(ctx, msg); err != nil {
			s.log.Error(ctx, "failed to publish check-in event", err)
		}
	}

	if s.feed != nil {
		if err := s.feed.NotifyCheckIn(checkIn.GymID, checkIn); err != nil {
			s.log.Debug(ctx, "no live feed listener for gym", "err", err.Error())
		}
	}
}

// Validate marks a check-in validated. Validation is only accepted
// within the validation window after creation.
func (s *CheckInService) Validate(ctx context.Context, checkInID uuid.UUID) (*models.CheckIn, error) {
	ctx = wrap.WithAction(ctx, "checkin_validate")

	checkIn, err := s.checkInRepo.GetByID(ctx, checkInID)
	if err != nil {
		return nil, err
	}
	if checkIn == nil {
		return nil, types.ErrResourceNotFound
	}

	if checkIn.IsValidated() {
		return nil, types.ErrCheckInAlreadyValidated
	}

	if s.now().Sub(checkIn.CreatedAt) > ValidationWindow {
		return nil, types.ErrLateCheckInValidation
	}

	validatedAt := s.now()
	checkIn.ValidatedAt = &validatedAt

	if err := s.checkInRepo.Save(ctx, checkIn); err != nil {
		return nil, err
	}

	return checkIn, nil
}

// History returns the user's check-ins, newest first, paginated.
func (s *CheckInService) History(ctx context.Context, userID uuid.UUID, page int) ([]models.CheckIn, models.Metadata, error) {
	return s.checkInRepo.ListByUserID(ctx, userID, models.NewFilters(page))
}

// Metrics returns the user's total check-in count.
func (s *CheckInService) Metrics(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.checkInRepo.CountByUserID(ctx, userID)
}
