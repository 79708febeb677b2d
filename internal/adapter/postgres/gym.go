package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/service/checkin"
	gymsvc "github.com/fitpass/gym-checkin-system/internal/service/gym"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	_ gymsvc.GymRepo      = (*GymRepo)(nil)
	_ checkin.GymProvider = (*GymRepo)(nil)
)

type GymRepo struct {
	db *pgxpool.Pool
}

func NewGymRepo(db *pgxpool.Pool) *GymRepo {
	return &GymRepo{
		db: db,
	}
}

func (r *GymRepo) Create(ctx context.Context, gym *models.Gym) (uuid.UUID, error) {
	const op = "GymRepo.Create"

	if gym == nil {
		return uuid.UUID{}, errors.New("nil gym")
	}

	const q = `
		INSERT INTO gyms (title, description, phone, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`

	err := TxorDB(ctx, r.db).QueryRow(
		ctx, q, gym.Title, gym.Description, gym.Phone, gym.Latitude, gym.Longitude,
	).Scan(&gym.ID, &gym.CreatedAt)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%s: %w", op, err)
	}

	return gym.ID, nil
}

// GetByID returns (nil, nil) when the gym does not exist.
func (r *GymRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Gym, error) {
	const op = "GymRepo.GetByID"

	const q = `
		SELECT id, title, description, phone, latitude, longitude, created_at
		FROM gyms
		WHERE id = $1;
	`

	var g models.Gym
	err := TxorDB(ctx, r.db).QueryRow(ctx, q, id).Scan(
		&g.ID,
		&g.Title,
		&g.Description,
		&g.Phone,
		&g.Latitude,
		&g.Longitude,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &g, nil
}

// SearchMany matches gyms whose title contains the query as a substring,
// 20 per page, 1-indexed.
func (r *GymRepo) SearchMany(ctx context.Context, query string, page int) ([]models.Gym, error) {
	const op = "GymRepo.SearchMany"

	if page < 1 {
		page = 1
	}

	const q = `
		SELECT id, title, description, phone, latitude, longitude, created_at
		FROM gyms
		WHERE title LIKE '%' || $1 || '%'
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3;
	`

	rows, err := TxorDB(ctx, r.db).Query(ctx, q, query, models.DefaultPageSize, (page-1)*models.DefaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanGyms(rows, op)
}

// FindManyNearby returns gyms strictly closer than the nearby radius to
// the given point, using a haversine expression evaluated in Postgres.
func (r *GymRepo) FindManyNearby(ctx context.Context, point models.Coordinate) ([]models.Gym, error) {
	const op = "GymRepo.FindManyNearby"

	const q = `
		SELECT id, title, description, phone, latitude, longitude, created_at
		FROM gyms
		WHERE 6371 * acos(least(1.0,
			cos(radians($1)) * cos(radians(latitude)) *
			cos(radians(longitude) - radians($2)) +
			sin(radians($1)) * sin(radians(latitude))
		)) < $3;
	`

	rows, err := TxorDB(ctx, r.db).Query(ctx, q, point.Latitude, point.Longitude, gymsvc.NearbyRadiusKm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanGyms(rows, op)
}

func scanGyms(rows pgx.Rows, op string) ([]models.Gym, error) {
	gyms := []models.Gym{}
	for rows.Next() {
		var g models.Gym
		if err := rows.Scan(
			&g.ID,
			&g.Title,
			&g.Description,
			&g.Phone,
			&g.Latitude,
			&g.Longitude,
			&g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		gyms = append(gyms, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return gyms, nil
}
