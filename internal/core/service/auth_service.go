package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/glowbook/salon-booking/internal/api/metrics"
	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
)

// AuthOptions configures token issuance.
type AuthOptions struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthService implements registration, login and session handling.
type AuthService struct {
	repo      ports.AuthRepository
	customers ports.CustomerRepository
	tokens    ports.TokenStore
	opts      AuthOptions
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.AuthRepository,
	customers ports.CustomerRepository,
	tokens ports.TokenStore,
	opts AuthOptions,
	log zerolog.Logger,
) *AuthService {
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = 15 * time.Minute
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{repo: repo, customers: customers, tokens: tokens, opts: opts, log: log}
}

// Register creates a customer account. The caller is not logged in afterwards.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || strings.TrimSpace(in.FirstName) == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		BusinessID:   in.BusinessID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		ID:         created.ID,
		Name:       created.Name(),
		Email:      created.Email,
		Status:     domain.CustomerActive,
		CreatedAt:  now,
		BusinessID: created.BusinessID,
	}
	if err := s.customers.Upsert(ctx, customer); err != nil {
		s.log.Warn().Err(err).Str("user_id", created.ID).Msg("failed to create customer profile")
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Tokens, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	tokens, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

// Refresh rotates a refresh token into a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.Tokens, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthenticated
	}
	userID, err := s.tokens.LookupRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.DeleteRefresh(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	return s.issue(ctx, user)
}

// Logout revokes the access token id until it would have expired and drops
// the refresh token.
func (s *AuthService) Logout(ctx context.Context, in ports.LogoutInput) error {
	if in.TokenID != "" {
		if ttl := time.Until(in.ExpiresAt); ttl > 0 {
			if err := s.tokens.Revoke(ctx, in.TokenID, ttl); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
		}
	}
	if in.RefreshToken != "" {
		if err := s.tokens.DeleteRefresh(ctx, in.RefreshToken); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) issue(ctx context.Context, user *domain.User) (*domain.Tokens, error) {
	access, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	refresh := uuid.NewString()
	if err := s.tokens.SaveRefresh(ctx, refresh, user.ID, s.opts.RefreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &domain.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         user.ID,
		"email":       user.Email,
		"role":        string(user.Role),
		"business_id": user.BusinessID,
		"jti":         uuid.NewString(),
		"iat":         now.Unix(),
		"exp":         now.Add(s.opts.AccessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.opts.JWTSecret))
}
