package postgres

import (
	"context"
	"errors"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/domain/types"
	"github.com/fitpass/gym-checkin-system/internal/service/auth"
	pgdb "github.com/fitpass/gym-checkin-system/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ auth.UserRepo = (*UserRepo)(nil)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

// Create inserts a user row. It expects u.Name, u.Email, u.Role and
// u.PasswordHash to be set. Duplicate email maps to ErrDuplicateResource.
func (r *UserRepo) Create(ctx context.Context, u *models.User) (uuid.UUID, error) {
	if u == nil {
		return uuid.UUID{}, errors.New("nil user")
	}

	const q = `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, COALESCE(NULLIF($4, ''), 'MEMBER'))
		RETURNING id, created_at;
	`

	err := TxorDB(ctx, r.db).QueryRow(
		ctx, q, u.Name, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if pgdb.IsUniqueViolation(err) {
			return uuid.UUID{}, types.ErrDuplicateResource
		}
		return uuid.UUID{}, err
	}

	return u.ID, nil
}

// GetByEmail fetches by email (unique). Returns (nil, nil) when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	const q = `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE email = $1;
	`

	var u models.User
	err := TxorDB(ctx, r.db).QueryRow(ctx, q, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, err
	}

	return &u, nil
}

// GetByID fetches by UUID id. Returns (nil, nil) when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE id = $1;
	`

	var u models.User
	err := TxorDB(ctx, r.db).QueryRow(ctx, q, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, err
	}

	return &u, nil
}
