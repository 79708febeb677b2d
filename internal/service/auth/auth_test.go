package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitpass/gym-checkin-system/internal/adapter/memory"
	"github.com/fitpass/gym-checkin-system/internal/domain/models"
	"github.com/fitpass/gym-checkin-system/internal/domain/types"
	"github.com/fitpass/gym-checkin-system/internal/service/auth"
	"github.com/fitpass/gym-checkin-system/pkg/logger"
	"github.com/google/uuid"
)

// nopTxManager runs the callback without a real transaction.
type nopTxManager struct{}

func (nopTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestAuth(t *testing.T) (*auth.AuthService, *auth.TokenService) {
	t.Helper()

	log := logger.InitLogger("test", logger.LevelError)
	users := memory.NewUserRepo()
	refresh := memory.NewRefreshTokenRepo()

	tokens := auth.NewTokenService("test-secret", users, refresh, nopTxManager{}, 15*time.Minute, 7*24*time.Hour, log)
	return auth.NewAuthService(users, tokens, log), tokens
}

func register(t *testing.T, svc *auth.AuthService, name, email, password string) uuid.UUID {
	t.Helper()

	id, err := svc.Register(context.Background(), &models.UserCreateRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("Register(%q): %v", email, err)
	}
	return id
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	register(t, svc, "John Doe", "johndoe@example.com", "123456")

	user, tokens, err := svc.Authenticate(ctx, "johndoe@example.com", "123456")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("expected a non-nil user id")
	}
	if user.Name != "John Doe" {
		t.Errorf("Name = %q, want %q", user.Name, "John Doe")
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _ := newTestAuth(t)

	register(t, svc, "John Doe", "johndoe@example.com", "123456")

	_, _, err := svc.Authenticate(context.Background(), "johndoe@example.com", "654321")
	if !errors.Is(err, types.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc, _ := newTestAuth(t)

	// A missing account and a wrong password must be indistinguishable.
	_, _, err := svc.Authenticate(context.Background(), "nobody@example.com", "123456")
	if !errors.Is(err, types.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	register(t, svc, "John Doe", "johndoe@example.com", "123456")

	user, _, err := svc.Authenticate(ctx, "johndoe@example.com", "123456")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.PasswordHash == "123456" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuth(t)

	register(t, svc, "John Doe", "johndoe@example.com", "123456")

	_, err := svc.Register(context.Background(), &models.UserCreateRequest{
		Name:     "John Doe",
		Email:    "johndoe@example.com",
		Password: "123456",
	})
	if !errors.Is(err, types.ErrDuplicateResource) {
		t.Fatalf("err = %v, want ErrDuplicateResource", err)
	}
}

func TestProfile(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	id := register(t, svc, "John Doe", "johndoe@example.com", "123456")

	user, err := svc.Profile(ctx, id)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if user.Name != "John Doe" {
		t.Errorf("Name = %q, want %q", user.Name, "John Doe")
	}

	_, err = svc.Profile(ctx, uuid.New())
	if !errors.Is(err, types.ErrResourceNotFound) {
		t.Fatalf("err = %v, want ErrResourceNotFound", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	register(t, svc, "John Doe", "johndoe@example.com", "123456")

	_, tokens, err := svc.Authenticate(ctx, "johndoe@example.com", "123456")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	pair, err := svc.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected a fresh token pair")
	}

	// The spent refresh token must be rejected on replay.
	if _, err := svc.Refresh(ctx, tokens.RefreshToken); !errors.Is(err, types.ErrInvalidToken) {
		t.Fatalf("replayed refresh err = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	register(t, svc, "John Doe", "johndoe@example.com", "123456")

	_, tokens, err := svc.Authenticate(ctx, "johndoe@example.com", "123456")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	if _, err := svc.Refresh(ctx, tokens.AccessToken); !errors.Is(err, types.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestRoleCheck(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	id := register(t, svc, "John Doe", "johndoe@example.com", "123456")

	_, tokens, err := svc.Authenticate(ctx, "johndoe@example.com", "123456")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	user, err := svc.RoleCheck(ctx, tokens.AccessToken)
	if err != nil {
		t.Fatalf("RoleCheck: %v", err)
	}
	if user.ID != id {
		t.Errorf("ID = %s, want %s", user.ID, id)
	}
	if user.Role != types.MemberRole.String() {
		t.Errorf("Role = %q, want %q", user.Role, types.MemberRole)
	}

	// A refresh token must not pass as an access token.
	if _, err := svc.RoleCheck(ctx, tokens.RefreshToken); !errors.Is(err, types.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}

	if _, err := svc.RoleCheck(ctx, "not-a-token"); !errors.Is(err, types.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
