package portal

import (
	"context"
	"slices"
	"time"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

const allKey = "all"

// ServiceStore caches the service catalog.
type ServiceStore struct {
	api   client.ServiceAPI
	lists *query[[]domain.Service]
	items *query[*domain.Service]
}

func NewServiceStore(api client.ServiceAPI, stale time.Duration, now func() time.Time) *ServiceStore {
	return &ServiceStore{
		api:   api,
		lists: newQuery[[]domain.Service](stale, now),
		items: newQuery[*domain.Service](stale, now),
	}
}

func (s *ServiceStore) List(ctx context.Context) ([]domain.Service, error) {
	list, err := s.lists.get(ctx, allKey, s.api.List)
	return slices.Clone(list), err
}

func (s *ServiceStore) Get(ctx context.Context, id string) (*domain.Service, error) {
	return s.items.get(ctx, id, func(ctx context.Context) (*domain.Service, error) {
		return s.api.Get(ctx, id)
	})
}

// ByStaff lists the services staffID performs.
func (s *ServiceStore) ByStaff(ctx context.Context, staffID string) ([]domain.Service, error) {
	list, err := s.lists.get(ctx, "staff:"+staffID, func(ctx context.Context) ([]domain.Service, error) {
		return s.api.ByStaff(ctx, staffID)
	})
	return slices.Clone(list), err
}

func (s *ServiceStore) Reset() {
	s.lists.reset()
	s.items.reset()
}

// StaffStore caches the staff directory.
type StaffStore struct {
	api   client.StaffAPI
	lists *query[[]domain.StaffMember]
	items *query[*domain.StaffMember]
}

func NewStaffStore(api client.StaffAPI, stale time.Duration, now func() time.Time) *StaffStore {
	return &StaffStore{
		api:   api,
		lists: newQuery[[]domain.StaffMember](stale, now),
		items: newQuery[*domain.StaffMember](stale, now),
	}
}

func (s *StaffStore) List(ctx context.Context) ([]domain.StaffMember, error) {
	list, err := s.lists.get(ctx, allKey, s.api.List)
	return slices.Clone(list), err
}

func (s *StaffStore) Get(ctx context.Context, id string) (*domain.StaffMember, error) {
	return s.items.get(ctx, id, func(ctx context.Context) (*domain.StaffMember, error) {
		return s.api.Get(ctx, id)
	})
}

// ByService lists the active staff offering serviceID.
func (s *StaffStore) ByService(ctx context.Context, serviceID string) ([]domain.StaffMember, error) {
	list, err := s.lists.get(ctx, "service:"+serviceID, func(ctx context.Context) ([]domain.StaffMember, error) {
		return s.api.ByService(ctx, serviceID)
	})
	return slices.Clone(list), err
}

func (s *StaffStore) Reset() {
	s.lists.reset()
	s.items.reset()
}
