package models

import (
	"time"

	"github.com/fitpass/gym-checkin-system/internal/domain/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type CustomClaims struct {
	jwt.RegisteredClaims

	UserID    uuid.UUID       `json:"user_id"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	TokenType types.TokenType `json:"token_type"`
	TokenID   uuid.UUID       `json:"token_id"`
}

// RefreshTokenRecord is the persisted counterpart of an issued refresh
// token. Only the SHA-256 of the token is stored.
type RefreshTokenRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}
