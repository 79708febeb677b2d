package auth

import (
	"context"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/google/uuid"
)

type UserRepo interface {
	Create(ctx context.Context, user *models.User) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type RefreshTokenRepo interface {
	Save(ctx context.Context, record *models.RefreshTokenRecord) error
	Get(ctx context.Context, id uuid.UUID) (*models.RefreshTokenRecord, error)
	MarkRevoked(ctx context.Context, id uuid.UUID) error
}

type TokenProvider interface {
	GenerateTokens(ctx context.Context, user *models.User) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Validate(ctx context.Context, token string) (*models.CustomClaims, error)
}
