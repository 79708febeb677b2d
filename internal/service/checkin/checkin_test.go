package checkin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitpass/gym-checkin-system/internal/adapter/memory"
	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/domain/types"
	"github.com/fitpass/gym-checkin-system/internal/service/checkin"
	"github.com/fitpass/gym-checkin-system/internal/service/geo"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
	"github.com/google/uuid"
)

// fakePublisher records published events instead of talking to a broker.
type fakePublisher struct {
	published []models.CheckInCreatedMessage
}

func (f *fakePublisher) PublishCheckInCreated(ctx context.Context, msg models.CheckInCreatedMessage) error {
	f.published = append(f.published, msg)
	return nil
}

// fakeFeed records live-feed notifications.
type fakeFeed struct {
	notified []uuid.UUID
}

func (f *fakeFeed) NotifyCheckIn(gymID uuid.UUID, checkIn *models.CheckIn) error {
	f.notified = append(f.notified, gymID)
	return nil
}

type fixture struct {
	svc       *checkin.CheckInService
	checkIns  *memory.CheckInRepo
	gyms      *memory.GymRepo
	publisher *fakePublisher
	feed      *fakeFeed
	gymID     uuid.UUID
	userID    uuid.UUID
}

// newFixture wires the service against in-memory repositories with one
// gym at the original fixture position.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.InitLogger("test", logger.LevelError)
	calc := geo.New()

	gyms := memory.NewGymRepo(calc)
	checkIns := memory.NewCheckInRepo()
	publisher := &fakePublisher{}
	feed := &fakeFeed{}

	gym := &models.Gym{
		Title:     "JavaScript Gym",
		Latitude:  -27.0747279,
		Longitude: -49.4889672,
	}
	gymID, err := gyms.Create(context.Background(), gym)
	if err != nil {
		t.Fatalf("create gym: %v", err)
	}

	return &fixture{
		svc:       checkin.NewCheckInService(checkIns, gyms, calc, publisher, feed, log),
		checkIns:  checkIns,
		gyms:      gyms,
		publisher: publisher,
		feed:      feed,
		gymID:     gymID,
		userID:    uuid.New(),
	}
}

func TestCheckIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.CheckIn(ctx, f.userID, f.gymID, -27.0747279, -49.4889672)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if c.ID == uuid.Nil {
		t.Error("expected an id to be assigned")
	}
	if c.IsValidated() {
		t.Error("a fresh check-in must not be validated")
	}

	if len(f.publisher.published) != 1 {
		t.Errorf("published %d events, want 1", len(f.publisher.published))
	}
	if len(f.feed.notified) != 1 || f.feed.notified[0] != f.gymID {
		t.Errorf("feed notified = %v, want [%s]", f.feed.notified, f.gymID)
	}
}

func TestCheckInUnknownGym(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CheckIn(context.Background(), f.userID, uuid.New(), -27.0747279, -49.4889672)
	if !errors.Is(err, types.ErrResourceNotFound) {
		t.Fatalf("err = %v, want ErrResourceNotFound", err)
	}
}

func TestCheckInTooFarFromGym(t *testing.T) {
	f := newFixture(t)

	// ~4 km from the gym, far beyond the 100 m geofence.
	_, err := f.svc.CheckIn(context.Background(), f.userID, f.gymID, -27.0610928, -49.5229501)
	if !errors.Is(err, types.ErrMaxDistance) {
		t.Fatalf("err = %v, want ErrMaxDistance", err)
	}

	if len(f.publisher.published) != 0 {
		t.Error("rejected check-in must not be published")
	}
}

func TestCheckInTwiceSameDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CheckIn(ctx, f.userID, f.gymID, -27.0747279, -49.4889672); err != nil {
		t.Fatalf("first CheckIn: %v", err)
	}

	_, err := f.svc.CheckIn(ctx, f.userID, f.gymID, -27.0747279, -49.4889672)
	if !errors.Is(err, types.ErrMaxNumberOfCheckIns) {
		t.Fatalf("err = %v, want ErrMaxNumberOfCheckIns", err)
	}
}

func TestCheckInTwiceOnDifferentDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	yesterday := &models.CheckIn{
		UserID:    f.userID,
		GymID:     f.gymID,
		CreatedAt: time.Now().AddDate(0, 0, -1),
	}
	if _, err := f.checkIns.Create(ctx, yesterday); err != nil {
		t.Fatalf("seed check-in: %v", err)
	}

	if _, err := f.svc.CheckIn(ctx, f.userID, f.gymID, -27.0747279, -49.4889672); err != nil {
		t.Fatalf("CheckIn on a new day: %v", err)
	}
}

func TestGeofenceCheckedBeforeDailyCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.CheckIn(ctx, f.userID, f.gymID, -27.0747279, -49.4889672); err != nil {
		t.Fatalf("first CheckIn: %v", err)
	}

	// Already checked in today AND too far away: distance wins.
	_, err := f.svc.CheckIn(ctx, f.userID, f.gymID, -27.0610928, -49.5229501)
	if !errors.Is(err, types.ErrMaxDistance) {
		t.Fatalf("err = %v, want ErrMaxDistance", err)
	}
}

func TestValidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CheckIn(ctx, f.userID, f.gymID, -27.0747279, -49.4889672)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	validated, err := f.svc.Validate(ctx, created.ID)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !validated.IsValidated() {
		t.Error("expected ValidatedAt to be set")
	}

	// Persisted too, not just the returned copy.
	stored, err := f.checkIns.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.IsValidated() {
		t.Error("validation was not persisted")
	}
}

func TestValidateTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CheckIn(ctx, f.userID, f.gymID, -27.0747279, -49.4889672)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	if _, err := f.svc.Validate(ctx, created.ID); err != nil {
		t.Fatalf("first Validate: %v", err)
	}

	_, err = f.svc.Validate(ctx, created.ID)
	if !errors.Is(err, types.ErrCheckInAlreadyValidated) {
		t.Fatalf("err = %v, want ErrCheckInAlreadyValidated", err)
	}
}

func TestValidateUnknownCheckIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Validate(context.Background(), uuid.New())
	if !errors.Is(err, types.ErrResourceNotFound) {
		t.Fatalf("err = %v, want ErrResourceNotFound", err)
	}
}

func TestValidateAfterWindowExpires(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stale := &models.CheckIn{
		UserID:    f.userID,
		GymID:     f.gymID,
		CreatedAt: time.Now().Add(-21 * time.Minute),
	}
	id, err := f.checkIns.Create(ctx, stale)
	if err != nil {
		t.Fatalf("seed check-in: %v", err)
	}

	_, err = f.svc.Validate(ctx, id)
	if !errors.Is(err, types.ErrLateCheckInValidation) {
		t.Fatalf("err = %v, want ErrLateCheckInValidation", err)
	}
}

func TestHistoryPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 22; i++ {
		seed := &models.CheckIn{
			UserID:    f.userID,
			GymID:     f.gymID,
			CreatedAt: time.Now().AddDate(0, 0, -i),
		}
		if _, err := f.checkIns.Create(ctx, seed); err != nil {
			t.Fatalf("seed check-in %d: %v", i, err)
		}
	}

	page1, meta, err := f.svc.History(ctx, f.userID, 1)
	if err != nil {
		t.Fatalf("History page 1: %v", err)
	}
	if len(page1) != 20 {
		t.Errorf("len(page1) = %d, want 20", len(page1))
	}
	if meta.TotalRecords != 22 {
		t.Errorf("TotalRecords = %d, want 22", meta.TotalRecords)
	}
	if meta.LastPage != 2 {
		t.Errorf("LastPage = %d, want 2", meta.LastPage)
	}

	page2, _, err := f.svc.History(ctx, f.userID, 2)
	if err != nil {
		t.Fatalf("History page 2: %v", err)
	}
	if len(page2) != 2 {
		t.Errorf("len(page2) = %d, want 2", len(page2))
	}
}

func TestMetricsCountsCheckIns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		seed := &models.CheckIn{
			UserID:    f.userID,
			GymID:     f.gymID,
			CreatedAt: time.Now().AddDate(0, 0, -i),
		}
		if _, err := f.checkIns.Create(ctx, seed); err != nil {
			t.Fatalf("seed check-in %d: %v", i, err)
		}
	}

	count, err := f.svc.Metrics(ctx, f.userID)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	other, err := f.svc.Metrics(ctx, uuid.New())
	if err != nil {
		t.Fatalf("Metrics for other user: %v", err)
	}
	if other != 0 {
		t.Errorf("count = %d, want 0", other)
	}
}
