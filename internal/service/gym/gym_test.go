package gym_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fitpass/gym-checkin-system/internal/adapter/memory"
	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/service/geo"
	"github.com/fitpass/gym-checkin-system/internal/service/gym"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
)

func newTestGym(t *testing.T) *gym.GymService {
	t.Helper()

	log := logger.InitLogger("test", logger.LevelError)
	repo := memory.NewGymRepo(geo.New())
	return gym.NewGymService(repo, log)
}

func createGym(t *testing.T, svc *gym.GymService, title string, lat, lng float64) *models.Gym {
	t.Helper()

	g, err := svc.Create(context.Background(), &models.GymCreateRequest{
		Title:     title,
		Latitude:  lat,
		Longitude: lng,
	})
	if err != nil {
		t.Fatalf("Create(%q): %v", title, err)
	}
	return g
}

func TestCreate(t *testing.T) {
	svc := newTestGym(t)

	g := createGym(t, svc, "JavaScript Gym", -27.2092052, -49.6401091)
	if g.ID.String() == "" {
		t.Error("expected an id to be assigned")
	}
}

func TestSearchMatchesTitleSubstring(t *testing.T) {
	svc := newTestGym(t)
	ctx := context.Background()

	createGym(t, svc, "JavaScript Gym", -27.2092052, -49.6401091)
	createGym(t, svc, "TypeScript Gym", -27.2092052, -49.6401091)

	gyms, err := svc.Search(ctx, "JavaScript", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(gyms) != 1 {
		t.Fatalf("len(gyms) = %d, want 1", len(gyms))
	}
	if gyms[0].Title != "JavaScript Gym" {
		t.Errorf("Title = %q, want %q", gyms[0].Title, "JavaScript Gym")
	}
}

func TestSearchPagination(t *testing.T) {
	svc := newTestGym(t)
	ctx := context.Background()

	for i := 1; i <= 22; i++ {
		createGym(t, svc, fmt.Sprintf("JavaScript Gym %02d", i), -27.2092052, -49.6401091)
	}

	page1, err := svc.Search(ctx, "JavaScript", 1)
	if err != nil {
		t.Fatalf("Search page 1: %v", err)
	}
	if len(page1) != 20 {
		t.Errorf("len(page1) = %d, want 20", len(page1))
	}

	page2, err := svc.Search(ctx, "JavaScript", 2)
	if err != nil {
		t.Fatalf("Search page 2: %v", err)
	}
	if len(page2) != 2 {
		t.Fatalf("len(page2) = %d, want 2", len(page2))
	}
	if page2[0].Title != "JavaScript Gym 21" || page2[1].Title != "JavaScript Gym 22" {
		t.Errorf("page2 = [%q, %q], want gyms 21 and 22", page2[0].Title, page2[1].Title)
	}
}

func TestFetchNearby(t *testing.T) {
	svc := newTestGym(t)
	ctx := context.Background()

	createGym(t, svc, "Near Gym", -27.2092052, -49.6401091)
	createGym(t, svc, "Far Gym", -27.0610928, -49.5229501)

	gyms, err := svc.FetchNearby(ctx, models.Coordinate{
		Latitude:  -27.2092052,
		Longitude: -49.6401091,
	})
	if err != nil {
		t.Fatalf("FetchNearby: %v", err)
	}
	if len(gyms) != 1 {
		t.Fatalf("len(gyms) = %d, want 1", len(gyms))
	}
	if gyms[0].Title != "Near Gym" {
		t.Errorf("Title = %q, want %q", gyms[0].Title, "Near Gym")
	}
}

func TestFetchNearbyBoundaryIsExclusive(t *testing.T) {
	svc := newTestGym(t)
	ctx := context.Background()

	// Roughly 10.1 km north of the search point; outside the strict
	// 10 km radius.
	createGym(t, svc, "Boundary Gym", 0.0910, 0)

	gyms, err := svc.FetchNearby(ctx, models.Coordinate{Latitude: 0, Longitude: 0})
	if err != nil {
		t.Fatalf("FetchNearby: %v", err)
	}
	if len(gyms) != 0 {
		t.Fatalf("len(gyms) = %d, want 0", len(gyms))
	}
}
