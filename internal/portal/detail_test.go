package portal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/client/mock"
)

func TestDetailStore_DisabledWithoutID(t *testing.T) {
	backend := mock.NewBackend(mock.Options{})
	store := NewAppointmentDetailStore(backend.AppointmentAPI(), backend.StaffAPI(), backend.ServiceAPI(), time.Minute, zerolog.Nop())
	d, err := store.Get(context.Background(), "")
	if d != nil || err != nil {
		t.Fatalf("expected nothing, got %+v, %v", d, err)
	}
	if backend.Calls("appointments.get") != 0 {
		t.Fatalf("expected no backend call")
	}
}

func TestDetailStore_DenormalizesAndCaches(t *testing.T) {
	backend := mock.NewBackend(mock.Options{Now: func() time.Time { return fixedNow }})
	ctx := context.Background()
	list, _ := backend.AppointmentAPI().ListByCustomer(ctx, "user-1")
	apt := list[0]

	store := NewAppointmentDetailStore(backend.AppointmentAPI(), backend.StaffAPI(), backend.ServiceAPI(), time.Minute, zerolog.Nop())
	d, err := store.Get(ctx, apt.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.StaffEmail == "" || len(d.StaffSpecialties) == 0 || d.ServiceDescription == "" {
		t.Fatalf("expected denormalized staff and service fields, got %+v", d)
	}
	if !d.EndTime.Equal(apt.EndTime) || d.DurationMinutes != apt.Service.DurationMinutes {
		t.Fatalf("core fields not carried over: %+v", d)
	}

	if _, err := store.Get(ctx, apt.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := backend.Calls("appointments.get"); got != 1 {
		t.Fatalf("expected a cached second read, got %d calls", got)
	}

	store.Invalidate(apt.ID)
	_, _ = store.Get(ctx, apt.ID)
	if got := backend.Calls("appointments.get"); got != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", got)
	}
}

func TestDetailStore_NotFound(t *testing.T) {
	backend := mock.NewBackend(mock.Options{})
	store := NewAppointmentDetailStore(backend.AppointmentAPI(), backend.StaffAPI(), backend.ServiceAPI(), time.Minute, zerolog.Nop())
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := backend.Calls("appointments.get"); got != 1 {
		t.Fatalf("not found must not be retried, got %d calls", got)
	}
}

func TestPortal_UpdateInvalidatesDetail(t *testing.T) {
	p, backend, _ := newMockPortal(t)
	ctx := context.Background()
	_, _ = p.Auth.Login(ctx, "customer@salon.test", "customer123")
	list, _ := p.Appointments.Load(ctx, "user-1")
	id := list[0].ID

	if _, err := p.Detail.Get(ctx, id); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := p.Appointments.Cancel(ctx, "user-1", id); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	d, err := p.Detail.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Status != "cancelled" || backend.Calls("appointments.get") != 2 {
		t.Fatalf("expected a refreshed detail after the update, got %s", d.Status)
	}
}
