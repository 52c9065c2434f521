package ports

import (
	"context"
	"time"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	BusinessID      string
}

// LogoutInput identifies the session to revoke.
type LogoutInput struct {
	TokenID      string
	ExpiresAt    time.Time
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Tokens, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.Tokens, error)
	Logout(ctx context.Context, input LogoutInput) error
	Me(ctx context.Context, userID string) (*domain.User, error)
}

// TokenStore keeps refresh tokens and revoked access-token ids.
type TokenStore interface {
	SaveRefresh(ctx context.Context, token, userID string, ttl time.Duration) error
	LookupRefresh(ctx context.Context, token string) (string, error)
	DeleteRefresh(ctx context.Context, token string) error
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
