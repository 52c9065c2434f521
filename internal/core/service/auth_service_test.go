package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
)

func newTestAuthService() (*AuthService, *stubAuthRepo, *stubCustomerRepo, *stubTokenStore) {
	repo := newStubAuthRepo()
	customers := newStubCustomerRepo()
	tokens := newStubTokenStore()
	svc := NewAuthService(repo, customers, tokens, AuthOptions{JWTSecret: "secret", AccessTTL: time.Hour}, discardLogger)
	return svc, repo, customers, tokens
}

func registerInput(email, password string) ports.RegisterInput {
	return ports.RegisterInput{
		FirstName:       "Alice",
		LastName:        "Moreau",
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
		BusinessID:      "biz_1",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, customers, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), registerInput("Alice@Example.com", "pass123"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	c, ok := customers.byID[user.ID]
	if !ok {
		t.Fatalf("expected customer profile for %s", user.ID)
	}
	if c.Name != "Alice Moreau" || c.Status != domain.CustomerActive {
		t.Fatalf("unexpected customer profile: %+v", c)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Password: "pass"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	in := registerInput("bob@example.com", "pass")
	in.ConfirmPassword = "other"
	if _, err := svc.Register(context.Background(), in); err != domain.ErrPasswordMismatch {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, _ = svc.Register(context.Background(), registerInput("bob@example.com", "pass"))
	if _, err := svc.Register(context.Background(), registerInput("bob@example.com", "pass2")); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _, tokens := newTestAuthService()

	registered, err := svc.Register(context.Background(), registerInput("carol@example.com", "s3cret"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}
	if user == nil || user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if tokens.refresh[pair.RefreshToken] != user.ID {
		t.Fatalf("refresh token not stored for user")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(pair.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != string(domain.RoleCustomer) {
		t.Fatalf("expected role %s, got %v", domain.RoleCustomer, claims["role"])
	}
	if claims["sub"] != user.ID || claims["business_id"] != "biz_1" {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, _ = svc.Register(context.Background(), registerInput("dave@example.com", "goodpass"))
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	svc, _, _, tokens := newTestAuthService()
	ctx := context.Background()

	_, _ = svc.Register(ctx, registerInput("erin@example.com", "pw"))
	pair, _, err := svc.Login(ctx, "erin@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatalf("expected a new refresh token")
	}
	if _, ok := tokens.refresh[pair.RefreshToken]; ok {
		t.Fatalf("old refresh token should be deleted")
	}
	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated on reuse, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	svc, _, _, tokens := newTestAuthService()
	ctx := context.Background()

	err := svc.Logout(ctx, ports.LogoutInput{
		TokenID:      "jti-1",
		ExpiresAt:    time.Now().Add(10 * time.Minute),
		RefreshToken: "r-1",
	})
	if err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if revoked, _ := tokens.IsRevoked(ctx, "jti-1"); !revoked {
		t.Fatalf("expected jti to be revoked")
	}

	// an already expired token needs no revocation entry
	if err := svc.Logout(ctx, ports.LogoutInput{TokenID: "jti-2", ExpiresAt: time.Now().Add(-time.Minute)}); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if revoked, _ := tokens.IsRevoked(ctx, "jti-2"); revoked {
		t.Fatalf("expired token should not be stored")
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	if _, err := svc.Me(context.Background(), ""); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	u, _ := svc.Register(context.Background(), registerInput("fay@example.com", "pw"))
	got, err := svc.Me(context.Background(), u.ID)
	if err != nil || got.Email != "fay@example.com" {
		t.Fatalf("unexpected Me result: %+v, %v", got, err)
	}
}
