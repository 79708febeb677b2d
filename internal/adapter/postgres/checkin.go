package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/domain/types"
	"github.com/fitpass/gym-checkin-system/internal/service/checkin"
	"github.com/fitpass/gym-checkin-system/pkg/metrics"
	pgdb "github.com/fitpass/gym-checkin-system/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ checkin.CheckInRepo = (*CheckInRepo)(nil)

const serviceName = "checkin-service"

type CheckInRepo struct {
	db *pgxpool.Pool
}

func NewCheckInRepo(db *pgxpool.Pool) *CheckInRepo {
	return &CheckInRepo{
		db: db,
	}
}

// Create inserts a check-in row. The partial unique index on
// (user_id, checkin_date) is the last line of defense against two
// same-day check-ins racing past the service-level check; a violation
// maps to ErrMaxNumberOfCheckIns.
func (r *CheckInRepo) Create(ctx context.Context, c *models.CheckIn) (uuid.UUID, error) {
	const op = "CheckInRepo.Create"

	if c == nil {
		return uuid.UUID{}, errors.New("nil check-in")
	}

	const q = `
		INSERT INTO checkins (user_id, gym_id)
		VALUES ($1, $2)
		RETURNING id, created_at;
	`

	start := time.Now()
	err := TxorDB(ctx, r.db).QueryRow(ctx, q, c.UserID, c.GymID).Scan(&c.ID, &c.CreatedAt)
	metrics.RecordDatabaseQuery(serviceName, "checkin_create", err, time.Since(start))
	if err != nil {
		if pgdb.IsUniqueViolation(err) {
			return uuid.UUID{}, types.ErrMaxNumberOfCheckIns
		}
		if pgdb.IsForeignKeyViolation(err) {
			return uuid.UUID{}, types.ErrResourceNotFound
		}
		return uuid.UUID{}, fmt.Errorf("%s: %w", op, err)
	}

	return c.ID, nil
}

// GetByID returns (nil, nil) when the check-in does not exist.
func (r *CheckInRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CheckIn, error) {
	const op = "CheckInRepo.GetByID"

	const q = `
		SELECT id, user_id, gym_id, created_at, validated_at
		FROM checkins
		WHERE id = $1;
	`

	var c models.CheckIn
	err := TxorDB(ctx, r.db).QueryRow(ctx, q, id).Scan(
		&c.ID,
		&c.UserID,
		&c.GymID,
		&c.CreatedAt,
		&c.ValidatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &c, nil
}

// GetByUserIDOnDate finds any check-in the user made on the same
// calendar date, ignoring time of day. Returns (nil, nil) when absent.
func (r *CheckInRepo) GetByUserIDOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.CheckIn, error) {
	const op = "CheckInRepo.GetByUserIDOnDate"

	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	const q = `
		SELECT id, user_id, gym_id, created_at, validated_at
		FROM checkins
		WHERE user_id = $1
		  AND created_at >= $2
		  AND created_at < $3
		LIMIT 1;
	`

	var c models.CheckIn
	err := TxorDB(ctx, r.db).QueryRow(ctx, q, userID, startOfDay, endOfDay).Scan(
		&c.ID,
		&c.UserID,
		&c.GymID,
		&c.CreatedAt,
		&c.ValidatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &c, nil
}

// Save persists mutable fields of an existing check-in.
func (r *CheckInRepo) Save(ctx context.Context, c *models.CheckIn) error {
	const op = "CheckInRepo.Save"

	if c == nil {
		return errors.New("nil check-in")
	}

	const q = `
		UPDATE checkins
		SET validated_at = $2
		WHERE id = $1;
	`

	start := time.Now()
	tag, err := TxorDB(ctx, r.db).Exec(ctx, q, c.ID, c.ValidatedAt)
	metrics.RecordDatabaseQuery(serviceName, "checkin_save", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrResourceNotFound
	}

	return nil
}

// ListByUserID returns the user's check-ins, newest first, with
// pagination metadata.
func (r *CheckInRepo) ListByUserID(ctx context.Context, userID uuid.UUID, filters models.Filters) ([]models.CheckIn, models.Metadata, error) {
	const op = "CheckInRepo.ListByUserID"

	const q = `
		SELECT count(*) OVER(), id, user_id, gym_id, created_at, validated_at
		FROM checkins
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3;
	`

	rows, err := TxorDB(ctx, r.db).Query(ctx, q, userID, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, models.Metadata{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	totalRecords := 0
	checkIns := []models.CheckIn{}
	for rows.Next() {
		var c models.CheckIn
		if err := rows.Scan(
			&totalRecords,
			&c.ID,
			&c.UserID,
			&c.GymID,
			&c.CreatedAt,
			&c.ValidatedAt,
		); err != nil {
			return nil, models.Metadata{}, fmt.Errorf("%s: %w", op, err)
		}
		checkIns = append(checkIns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Metadata{}, fmt.Errorf("%s: %w", op, err)
	}

	metadata := models.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return checkIns, metadata, nil
}

func (r *CheckInRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	const op = "CheckInRepo.CountByUserID"

	const q = `
		SELECT count(*)
		FROM checkins
		WHERE user_id = $1;
	`

	var count int
	if err := TxorDB(ctx, r.db).QueryRow(ctx, q, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}
