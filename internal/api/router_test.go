package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

const testSecret = "router-secret"

type stubSettings struct {
	mu    sync.Mutex
	saved []domain.BusinessSettings
}

func (s *stubSettings) Get(_ context.Context, businessID string) (*domain.BusinessSettings, error) {
	return &domain.BusinessSettings{BusinessID: businessID, Name: "Glow"}, nil
}

func (s *stubSettings) Save(_ context.Context, in domain.BusinessSettings) (*domain.BusinessSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, in)
	return &in, nil
}

var (
	routerOnce     sync.Once
	sharedRouter   *echo.Echo
	sharedSettings = &stubSettings{}
)

// The prometheus middleware registers its collectors globally, so every test
// shares one router.
func testRouter() *echo.Echo {
	routerOnce.Do(func() {
		sharedRouter = NewRouter(Deps{
			JWTSecret:       testSecret,
			DefaultBusiness: "default",
			Settings:        sharedSettings,
			Logger:          zerolog.Nop(),
		})
	})
	return sharedRouter
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         "user-1",
		"role":        role,
		"business_id": "biz-1",
		"jti":         "jti-" + role,
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func serve(method, target, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)
	return rec
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	for _, path := range []string{"/health", "/health/ready", "/metrics", "/swagger/doc.json"} {
		rec := serve(http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_RequiresBearerToken(t *testing.T) {
	rec := serve(http.MethodGet, "/api/settings", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != http.StatusText(http.StatusUnauthorized) || body["message"] == "" {
		t.Fatalf("unexpected error envelope: %v", body)
	}
}

func TestRouter_AdminRoutesRejectOtherRoles(t *testing.T) {
	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/services"},
		{http.MethodPut, "/api/services/svc-1"},
		{http.MethodDelete, "/api/staff/stf-1"},
		{http.MethodGet, "/api/customers"},
		{http.MethodPut, "/api/settings"},
	}
	for _, role := range []string{"customer", "staff"} {
		auth := bearer(t, role)
		for _, r := range routes {
			rec := serve(r.method, r.path, auth, `{}`)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("%s %s as %s: expected 403, got %d", r.method, r.path, role, rec.Code)
			}
		}
	}
}

func TestRouter_SettingsReadableByAnyRoleWritableByAdmin(t *testing.T) {
	rec := serve(http.MethodGet, "/api/settings", bearer(t, "customer"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got domain.BusinessSettings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.BusinessID != "biz-1" {
		t.Fatalf("expected token business biz-1, got %q", got.BusinessID)
	}

	rec = serve(http.MethodPut, "/api/settings", bearer(t, "admin"), `{"name":"Glow Studio"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	sharedSettings.mu.Lock()
	defer sharedSettings.mu.Unlock()
	if len(sharedSettings.saved) != 1 || sharedSettings.saved[0].Name != "Glow Studio" {
		t.Fatalf("expected one save, got %+v", sharedSettings.saved)
	}
}
