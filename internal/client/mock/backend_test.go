package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

type staticTokens struct{ token string }

func (s *staticTokens) AccessToken() string { return s.token }

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestBackend() (*Backend, *staticTokens) {
	tokens := &staticTokens{}
	b := NewBackend(Options{
		BusinessID: "biz-1",
		Tokens:     tokens,
		Now:        func() time.Time { return fixedNow },
	})
	return b, tokens
}

func login(t *testing.T, b *Backend, tokens *staticTokens, email, password string) {
	t.Helper()
	got, err := b.AuthAPI().Login(context.Background(), client.Credentials{Email: email, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	tokens.token = got.AccessToken
}

func TestLoginAndMe(t *testing.T) {
	b, tokens := newTestBackend()
	ctx := context.Background()

	if _, err := b.AuthAPI().Me(ctx); !errors.Is(err, client.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated before login, got %v", err)
	}
	if _, err := b.AuthAPI().Login(ctx, client.Credentials{Email: "admin@salon.test", Password: "nope"}); !errors.Is(err, client.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for bad password, got %v", err)
	}

	login(t, b, tokens, "Admin@Salon.test", "admin123")
	me, err := b.AuthAPI().Me(ctx)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Role != domain.RoleAdmin || me.BusinessID != "biz-1" {
		t.Fatalf("unexpected user %+v", me)
	}

	if err := b.AuthAPI().Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := b.AuthAPI().Me(ctx); !errors.Is(err, client.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	b, tokens := newTestBackend()
	ctx := context.Background()

	reg := client.Registration{FirstName: "Jo", LastName: "Doe", Email: "jo@example.com", Password: "secret1", ConfirmPassword: "secret1"}
	u, err := b.AuthAPI().Register(ctx, reg)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Role != domain.RoleCustomer {
		t.Fatalf("expected customer role, got %s", u.Role)
	}
	if _, err := b.AuthAPI().Register(ctx, reg); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	reg.Email, reg.ConfirmPassword = "other@example.com", "different"
	if _, err := b.AuthAPI().Register(ctx, reg); err == nil {
		t.Fatalf("expected password mismatch to fail")
	}

	login(t, b, tokens, "jo@example.com", "secret1")
	me, err := b.AuthAPI().Me(ctx)
	if err != nil || me.ID != u.ID {
		t.Fatalf("expected registered user, got %+v, %v", me, err)
	}
}

func TestListByCustomerSeedsDeterministically(t *testing.T) {
	b, _ := newTestBackend()
	ctx := context.Background()

	first, err := b.AppointmentAPI().ListByCustomer(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByCustomer: %v", err)
	}
	if len(first) != 6 {
		t.Fatalf("expected 6 seeded appointments, got %d", len(first))
	}
	upcoming, past := domain.Partition(first, fixedNow)
	if len(upcoming) != 3 || len(past) != 3 {
		t.Fatalf("expected 3 upcoming and 3 past, got %d/%d", len(upcoming), len(past))
	}
	for _, a := range first {
		if a.CustomerName != "Casey Customer" {
			t.Fatalf("expected customer name from account, got %q", a.CustomerName)
		}
		if !a.EndTime.Equal(a.StartTime.Add(time.Duration(a.Service.DurationMinutes) * time.Minute)) {
			t.Fatalf("end time does not match service duration for %s", a.ID)
		}
	}

	second, _ := b.AppointmentAPI().ListByCustomer(ctx, "user-1")
	if second[0].ID != first[0].ID {
		t.Fatalf("expected the same list on the second read")
	}
	if got := b.Calls("appointments.list"); got != 2 {
		t.Fatalf("expected 2 list calls, got %d", got)
	}
}

func TestCreateComputesEndTimeAndAppends(t *testing.T) {
	b, tokens := newTestBackend()
	ctx := context.Background()
	login(t, b, tokens, "customer@salon.test", "customer123")

	start := fixedNow.Add(48 * time.Hour)
	apt, err := b.AppointmentAPI().Create(ctx, client.NewAppointment{StaffID: "stf-1", ServiceID: "svc-2", StartTime: start, Notes: "first visit"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !apt.EndTime.Equal(start.Add(90*time.Minute)) || apt.Status != domain.StatusScheduled {
		t.Fatalf("unexpected appointment %+v", apt)
	}
	if apt.CustomerID != "user-1" {
		t.Fatalf("expected session customer, got %q", apt.CustomerID)
	}

	list, _ := b.AppointmentAPI().ListByCustomer(ctx, "user-1")
	if list[len(list)-1].ID != apt.ID {
		t.Fatalf("expected created appointment at the end of the list")
	}

	if _, err := b.AppointmentAPI().Create(ctx, client.NewAppointment{StaffID: "stf-3", ServiceID: "svc-1", StartTime: start}); err == nil {
		t.Fatalf("expected staff that cannot perform the service to be rejected")
	}
	if _, err := b.AppointmentAPI().Create(ctx, client.NewAppointment{StaffID: "stf-1", ServiceID: "svc-x", StartTime: start}); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown service, got %v", err)
	}
}

func TestUpdateCancelAndRescheduleKeepOtherFields(t *testing.T) {
	b, _ := newTestBackend()
	ctx := context.Background()
	list, _ := b.AppointmentAPI().ListByCustomer(ctx, "user-1")
	orig := list[0]

	cancelled, err := b.AppointmentAPI().Update(ctx, orig.ID, domain.CancelPatch())
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.StatusCancelled || !cancelled.StartTime.Equal(orig.StartTime) || !cancelled.EndTime.Equal(orig.EndTime) {
		t.Fatalf("cancel must only change the status: %+v", cancelled)
	}

	newStart := orig.StartTime.Add(24 * time.Hour)
	moved, err := b.AppointmentAPI().Update(ctx, orig.ID, domain.ReschedulePatch(newStart))
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.Status != domain.StatusRescheduled || !moved.StartTime.Equal(newStart) {
		t.Fatalf("unexpected rescheduled appointment %+v", moved)
	}
	if moved.ServiceID != orig.ServiceID || moved.StaffID != orig.StaffID || moved.Notes != orig.Notes ||
		moved.Version != orig.Version || !moved.EndTime.Equal(orig.EndTime) || !moved.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("reschedule changed unrelated fields")
	}

	if _, err := b.AppointmentAPI().Update(ctx, "42", domain.CancelPatch()); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRejectsStaffWhoCannotPerformService(t *testing.T) {
	b, _ := newTestBackend()
	ctx := context.Background()
	list, _ := b.AppointmentAPI().ListByCustomer(ctx, "user-1")
	orig := list[0]

	nails := "stf-3"
	_, err := b.AppointmentAPI().Update(ctx, orig.ID, domain.AppointmentPatch{StaffID: &nails})
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 422 {
		t.Fatalf("expected a 422 APIError, got %v", err)
	}
	after, _ := b.AppointmentAPI().Get(ctx, orig.ID)
	if after.StaffID != orig.StaffID {
		t.Fatalf("expected staff unchanged, got %s", after.StaffID)
	}

	barber := "stf-2"
	moved, err := b.AppointmentAPI().Update(ctx, orig.ID, domain.AppointmentPatch{StaffID: &barber})
	if err != nil || moved.Staff.Name != "Liam Ortega" {
		t.Fatalf("expected move to a qualified stylist, got %+v, %v", moved, err)
	}
}

func TestResetDropsAppointmentsAndSessions(t *testing.T) {
	b, tokens := newTestBackend()
	ctx := context.Background()
	login(t, b, tokens, "customer@salon.test", "customer123")

	list, _ := b.AppointmentAPI().ListByCustomer(ctx, "user-1")
	if _, err := b.AppointmentAPI().Update(ctx, list[0].ID, domain.CancelPatch()); err != nil {
		t.Fatalf("Update: %v", err)
	}

	b.Reset()

	if _, err := b.AuthAPI().Me(ctx); !errors.Is(err, client.ErrUnauthenticated) {
		t.Fatalf("expected session to be gone, got %v", err)
	}
	fresh, _ := b.AppointmentAPI().ListByCustomer(ctx, "user-1")
	if fresh[0].Status == domain.StatusCancelled {
		t.Fatalf("expected regenerated appointments after reset")
	}
}

func TestCatalogLookups(t *testing.T) {
	b, _ := newTestBackend()
	ctx := context.Background()

	staff, err := b.StaffAPI().ByService(ctx, "svc-1")
	if err != nil {
		t.Fatalf("ByService: %v", err)
	}
	for _, s := range staff {
		if !s.Active {
			t.Fatalf("inactive staff %s returned", s.ID)
		}
	}
	if len(staff) != 2 {
		t.Fatalf("expected 2 active staff for svc-1, got %d", len(staff))
	}

	services, err := b.ServiceAPI().ByStaff(ctx, "stf-3")
	if err != nil || len(services) != 2 {
		t.Fatalf("expected 2 services for stf-3, got %d, %v", len(services), err)
	}
	if _, err := b.ServiceAPI().Get(ctx, "missing"); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingsSaveStampsBusinessAndTime(t *testing.T) {
	b, _ := newTestBackend()
	ctx := context.Background()

	saved, err := b.SettingsAPI().Save(ctx, domain.BusinessSettings{Name: "Glow"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.BusinessID != "biz-1" || !saved.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected saved settings %+v", saved)
	}
	got, _ := b.SettingsAPI().Get(ctx)
	if got.Name != "Glow" {
		t.Fatalf("expected saved name, got %q", got.Name)
	}
}

func TestLatencyHonoursContext(t *testing.T) {
	b := NewBackend(Options{Latency: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.ServiceAPI().List(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
