package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/client/live"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

func TestDecide(t *testing.T) {
	admin := &domain.User{ID: "a", Role: domain.RoleAdmin}
	staff := &domain.User{ID: "s", Role: domain.RoleStaff}
	customer := &domain.User{ID: "c", Role: domain.RoleCustomer}

	cases := []struct {
		name string
		user *domain.User
		path string
		want string
	}{
		{"public page", nil, "/login", ""},
		{"anonymous customer area", nil, "/dashboard", LoginPath},
		{"anonymous admin area", nil, "/admin/dashboard", LoginPath},
		{"customer in customer area", customer, "/appointments/42", ""},
		{"customer in admin area", customer, "/admin/bookings", LoginPath},
		{"admin in customer area", admin, "/dashboard", LoginPath},
		{"staff in admin area", staff, "/admin/bookings", ""},
		{"staff on admin-only page", staff, "/admin/settings", AdminDashboardPath},
		{"staff on admin-only sub page", staff, "/admin/services/new", AdminDashboardPath},
		{"admin on admin-only page", admin, "/admin/staff", ""},
		{"segment match only", nil, "/administer", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(tc.user, tc.path)
			if d.Redirect != tc.want {
				t.Fatalf("expected redirect %q, got %q", tc.want, d.Redirect)
			}
			if d.Allowed() != (tc.want == "") {
				t.Fatalf("Allowed disagrees with Redirect")
			}
		})
	}
}

func TestGuard_ResolvesUserBeforeDeciding(t *testing.T) {
	p, backend, _ := newMockPortal(t)
	ctx := context.Background()

	d, err := p.Guard.Check(ctx, "/dashboard")
	if err != nil || d.Redirect != LoginPath {
		t.Fatalf("expected login redirect, got %+v, %v", d, err)
	}
	if backend.Calls("auth.me") != 0 {
		t.Fatalf("no token means no current-user call")
	}

	if _, err := p.Auth.Login(ctx, "customer@salon.test", "customer123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	d, err = p.Guard.Check(ctx, "/dashboard")
	if err != nil || !d.Allowed() {
		t.Fatalf("expected access, got %+v, %v", d, err)
	}
	d, _ = p.Guard.Check(ctx, "/admin/dashboard")
	if d.Redirect != LoginPath {
		t.Fatalf("customer must be sent to login from the admin area, got %+v", d)
	}
}

func TestGuard_LegacyUserRoleEntersCustomerArea(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/me" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","firstName":"Lee","role":"user"}`))
	}))
	defer srv.Close()

	storage := NewMemoryStorage()
	_ = storage.Set(KeyAccessToken, "tok")
	api := live.New(live.Options{BaseURL: srv.URL + "/api", BusinessID: "biz-1", Tokens: TokenSource(storage)})
	auth := NewAuthStore(api.AuthAPI(), storage, 5*time.Minute, newFakeClock().Now, zerolog.Nop())
	ctx := context.Background()

	u, err := auth.CurrentUser(ctx)
	if err != nil || u == nil {
		t.Fatalf("CurrentUser: %+v, %v", u, err)
	}
	if u.Role != domain.RoleCustomer {
		t.Fatalf("expected customer role, got %q", u.Role)
	}
	if got := RedirectFor(u.Role); got != CustomerDashboardPath {
		t.Fatalf("expected customer dashboard, got %s", got)
	}
	d, err := NewGuard(auth).Check(ctx, CustomerDashboardPath)
	if err != nil || !d.Allowed() {
		t.Fatalf("expected customer area to open, got %+v, %v", d, err)
	}
}
