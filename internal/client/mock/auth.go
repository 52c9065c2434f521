package mock

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

type authAPI struct{ b *Backend }

func (a authAPI) Login(ctx context.Context, creds client.Credentials) (*domain.Tokens, error) {
	if err := a.b.simulate(ctx, "auth.login"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()

	acc, ok := a.b.users[strings.ToLower(strings.TrimSpace(creds.Email))]
	if !ok || acc.password != creds.Password {
		return nil, &client.APIError{Status: http.StatusUnauthorized, Message: "invalid email or password"}
	}
	tokens := &domain.Tokens{
		AccessToken:  "mock-access-" + uuid.NewString(),
		RefreshToken: "mock-refresh-" + uuid.NewString(),
	}
	a.b.sessions[tokens.AccessToken] = acc.user.ID
	return tokens, nil
}

func (a authAPI) Register(ctx context.Context, reg client.Registration) (*domain.User, error) {
	if err := a.b.simulate(ctx, "auth.register"); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if email == "" || reg.Password == "" || strings.TrimSpace(reg.FirstName) == "" {
		return nil, &client.APIError{Status: http.StatusBadRequest, Message: "first name, email and password are required"}
	}
	if reg.Password != reg.ConfirmPassword {
		return nil, &client.APIError{Status: http.StatusBadRequest, Message: "passwords do not match"}
	}

	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	if _, exists := a.b.users[email]; exists {
		return nil, &client.APIError{Status: http.StatusConflict, Message: "email already registered"}
	}
	now := a.b.now()
	acc := &account{
		user: domain.User{
			ID:         "user-" + uuid.NewString(),
			FirstName:  strings.TrimSpace(reg.FirstName),
			LastName:   strings.TrimSpace(reg.LastName),
			Email:      email,
			Role:       domain.RoleCustomer,
			BusinessID: a.b.businessID,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		password: reg.Password,
	}
	a.b.users[email] = acc
	u := acc.user
	return &u, nil
}

func (a authAPI) Logout(ctx context.Context) error {
	if err := a.b.simulate(ctx, "auth.logout"); err != nil {
		return err
	}
	if a.b.tokens == nil {
		return nil
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	delete(a.b.sessions, a.b.tokens.AccessToken())
	return nil
}

func (a authAPI) Me(ctx context.Context) (*domain.User, error) {
	if err := a.b.simulate(ctx, "auth.me"); err != nil {
		return nil, err
	}
	a.b.mu.Lock()
	defer a.b.mu.Unlock()
	acc, ok := a.b.sessionUser()
	if !ok {
		return nil, &client.APIError{Status: http.StatusUnauthorized, Message: "not authenticated"}
	}
	u := acc.user
	return &u, nil
}
