package portal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glowbook/salon-booking/internal/client/mock"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

type failingSettings struct{}

func (failingSettings) Get(context.Context) (*domain.BusinessSettings, error) {
	return nil, errors.New("offline")
}

func (failingSettings) Save(context.Context, domain.BusinessSettings) (*domain.BusinessSettings, error) {
	return nil, errors.New("offline")
}

func TestCatalogStores_CacheWithinStaleWindow(t *testing.T) {
	backend := mock.NewBackend(mock.Options{})
	clock := newFakeClock()
	services := NewServiceStore(backend.ServiceAPI(), 10*time.Minute, clock.Now)
	staff := NewStaffStore(backend.StaffAPI(), 10*time.Minute, clock.Now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := services.List(ctx); err != nil {
			t.Fatalf("List: %v", err)
		}
		if _, err := staff.ByService(ctx, "svc-1"); err != nil {
			t.Fatalf("ByService: %v", err)
		}
	}
	if backend.Calls("services.list") != 1 || backend.Calls("staff.byService") != 1 {
		t.Fatalf("expected one backend call each")
	}

	clock.Advance(10 * time.Minute)
	_, _ = services.List(ctx)
	if backend.Calls("services.list") != 2 {
		t.Fatalf("expected refetch once stale")
	}

	byStaff, err := services.ByStaff(ctx, "stf-2")
	if err != nil || len(byStaff) != 2 {
		t.Fatalf("expected 2 services for stf-2, got %d, %v", len(byStaff), err)
	}
	member, err := staff.Get(ctx, "stf-1")
	if err != nil || member.Name == "" {
		t.Fatalf("Get: %+v, %v", member, err)
	}
}

func TestSettingsStore_SaveAndNotify(t *testing.T) {
	backend := mock.NewBackend(mock.Options{BusinessID: "biz-1"})
	n := &recordingNotifier{}
	store := NewSettingsStore(backend.SettingsAPI(), n)
	ctx := context.Background()

	cur, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cur.Name = "Glow Studio"
	if _, err := store.Save(ctx, *cur); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := store.Load(ctx)
	if got.Name != "Glow Studio" || backend.Calls("settings.get") != 1 {
		t.Fatalf("expected held settings without a refetch, got %q", got.Name)
	}
	if len(n.successes) != 1 {
		t.Fatalf("expected a success notification")
	}

	failing := NewSettingsStore(failingSettings{}, n)
	if _, err := failing.Save(ctx, *cur); err == nil {
		t.Fatalf("expected error")
	}
	if msgs := n.Errors(); len(msgs) != 1 || msgs[0] != "Failed to save settings: offline" {
		t.Fatalf("unexpected notifications %v", msgs)
	}
	if failing.Err() == nil || failing.Saving() {
		t.Fatalf("expected recorded error and no save in flight")
	}
}
