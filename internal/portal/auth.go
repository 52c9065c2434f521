package portal

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

// Paths the portal redirects to.
const (
	LoginPath             = "/login"
	CustomerDashboardPath = "/dashboard"
	AdminDashboardPath    = "/admin/dashboard"
)

type AuthState string

const (
	StateUnauthenticated AuthState = "unauthenticated"
	StateAuthenticating  AuthState = "authenticating"
	StateAuthenticated   AuthState = "authenticated"
	StateLoggedOut       AuthState = "logged_out"
)

const meKey = "me"

// RedirectFor returns the landing page of role.
func RedirectFor(role domain.Role) string {
	if role.IsBackOffice() {
		return AdminDashboardPath
	}
	return CustomerDashboardPath
}

// AuthStore owns the session: stored tokens and the cached current user.
type AuthStore struct {
	api     client.AuthAPI
	storage Storage
	users   *query[*domain.User]
	log     zerolog.Logger

	mu     sync.Mutex
	state  AuthState
	resets []func()
}

func NewAuthStore(api client.AuthAPI, storage Storage, stale time.Duration, now func() time.Time, log zerolog.Logger) *AuthStore {
	state := StateUnauthenticated
	if storage.Get(KeyAccessToken) != "" {
		state = StateAuthenticated
	}
	return &AuthStore{
		api:     api,
		storage: storage,
		users:   newQuery[*domain.User](stale, now),
		log:     log,
		state:   state,
	}
}

// OnLogout registers fn to run when the session ends.
func (s *AuthStore) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, fn)
}

func (s *AuthStore) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AuthStore) setState(st AuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

// Login stores the issued tokens, caches the user and returns the path to
// redirect to.
func (s *AuthStore) Login(ctx context.Context, email, password string) (string, error) {
	s.setState(StateAuthenticating)

	tokens, err := s.api.Login(ctx, client.Credentials{Email: email, Password: password})
	if err != nil {
		s.setState(StateUnauthenticated)
		return "", err
	}
	if err := s.storeTokens(tokens); err != nil {
		s.setState(StateUnauthenticated)
		return "", err
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.clearTokens()
		s.setState(StateUnauthenticated)
		return "", err
	}
	s.users.set(meKey, user)
	s.setState(StateAuthenticated)
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("logged in")
	return RedirectFor(user.Role), nil
}

// Register creates an account. The caller stays logged out.
func (s *AuthStore) Register(ctx context.Context, reg client.Registration) (*domain.User, error) {
	return s.api.Register(ctx, reg)
}

// Logout ends the session locally even when the server call fails.
func (s *AuthStore) Logout(ctx context.Context) {
	if s.storage.Get(KeyAccessToken) != "" {
		if err := s.api.Logout(ctx); err != nil {
			s.log.Warn().Err(err).Msg("server logout failed")
		}
	}
	s.clearTokens()
	s.users.reset()

	s.mu.Lock()
	s.state = StateLoggedOut
	hooks := slices.Clone(s.resets)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// CurrentUser resolves the signed-in user: a stored token is required, then
// the cache is consulted before the API. It returns nil without calling the
// API when there is no token, and clears the tokens when the API rejects them.
func (s *AuthStore) CurrentUser(ctx context.Context) (*domain.User, error) {
	if s.storage.Get(KeyAccessToken) == "" {
		return nil, nil
	}
	if u, ok := s.users.fresh(meKey); ok && u != nil {
		return u, nil
	}
	u, err := s.users.get(ctx, meKey, s.api.Me)
	if errors.Is(err, client.ErrUnauthenticated) {
		s.clearTokens()
		s.users.invalidate(meKey)
		s.setState(StateUnauthenticated)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// The session may have ended while Me was in flight.
	if s.storage.Get(KeyAccessToken) == "" {
		return nil, nil
	}
	return u, nil
}

// AccessToken implements client.TokenSource.
func (s *AuthStore) AccessToken() string { return s.storage.Get(KeyAccessToken) }

func (s *AuthStore) storeTokens(t *domain.Tokens) error {
	if err := s.storage.Set(KeyAccessToken, t.AccessToken); err != nil {
		return err
	}
	return s.storage.Set(KeyRefreshToken, t.RefreshToken)
}

func (s *AuthStore) clearTokens() {
	if err := s.storage.Delete(KeyAccessToken, KeyRefreshToken); err != nil {
		s.log.Error().Err(err).Msg("clearing stored tokens failed")
	}
}
