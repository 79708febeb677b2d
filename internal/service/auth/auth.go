package auth

import (
	"context"

	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/domain/types"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
	wrap "github.com/fitpass/gym-checkin-system/pkg/logger/wrapper"
	"github.com/fitpass/gym-checkin-system/pkg/metrics"
	"github.com/fitpass/gym-checkin-system/pkg/passhash"
	"github.com/google/uuid"
)

const serviceName = "auth-service"

type AuthService struct {
	userRepo     UserRepo
	tokenService TokenProvider
	log          logger.Logger
}

func NewAuthService(userRepo UserRepo, tokenService TokenProvider, log logger.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenService: tokenService,
		log:          log,
	}
}

// Authenticate verifies the user's credentials. A missing user and a
// wrong password fail identically, so the caller cannot tell which
// check rejected the attempt.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	if user == nil {
		return nil, nil, types.ErrInvalidCredentials
	}

	if !passhash.VerifyPassword(password, user.PasswordHash) {
		return nil, nil, types.ErrInvalidCredentials
	}

	tokens, err := s.tokenService.GenerateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Register creates a new member account.
func (s *AuthService) Register(ctx context.Context, req *models.UserCreateRequest) (uuid.UUID, error) {
	ctx = wrap.WithAction(ctx, "member_register")

	// Check if a user with this email already exists
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return uuid.Nil, err
	}
	if existing != nil {
		return uuid.Nil, types.ErrDuplicateResource
	}

	hash, err := passhash.HashPassword(req.Password)
	if err != nil {
		s.log.Error(ctx, "failed to hash password", err)
		return uuid.Nil, err
	}

	newUser := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         types.MemberRole.String(),
	}

	id, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		s.log.Error(ctx, "failed to save user", err)
		return uuid.Nil, err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(serviceName).Inc()

	return id, nil
}

// Profile returns the user record for the given id.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, types.ErrResourceNotFound
	}
	return user, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	return s.tokenService.Refresh(ctx, refreshToken)
}

// RoleCheck validates an access token and loads the user it belongs to.
// Used by the auth middleware.
func (s *AuthService) RoleCheck(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokenService.Validate(ctx, token)
	if err != nil {
		return nil, types.ErrInvalidToken
	}

	if claims.TokenType != types.AccessToken {
		return nil, types.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, types.ErrInvalidToken
	}

	return user, nil
}
