package mock

import (
	"context"
	"fmt"
	"slices"

	"github.com/glowbook/salon-booking/internal/client"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

type serviceAPI struct{ b *Backend }

func (s serviceAPI) List(ctx context.Context) ([]domain.Service, error) {
	if err := s.b.simulate(ctx, "services.list"); err != nil {
		return nil, err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	return slices.Clone(s.b.services), nil
}

func (s serviceAPI) Get(ctx context.Context, id string) (*domain.Service, error) {
	if err := s.b.simulate(ctx, "services.get"); err != nil {
		return nil, err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	svc, ok := s.b.service(id)
	if !ok {
		return nil, fmt.Errorf("service %s: %w", id, client.ErrNotFound)
	}
	return &svc, nil
}

func (s serviceAPI) ByStaff(ctx context.Context, staffID string) ([]domain.Service, error) {
	if err := s.b.simulate(ctx, "services.byStaff"); err != nil {
		return nil, err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	stf, ok := s.b.staffMember(staffID)
	if !ok {
		return nil, fmt.Errorf("staff member %s: %w", staffID, client.ErrNotFound)
	}
	out := make([]domain.Service, 0, len(stf.ServiceIDs))
	for _, svc := range s.b.services {
		if stf.CanPerform(svc.ID) {
			out = append(out, svc)
		}
	}
	return out, nil
}

type staffAPI struct{ b *Backend }

func (s staffAPI) List(ctx context.Context) ([]domain.StaffMember, error) {
	if err := s.b.simulate(ctx, "staff.list"); err != nil {
		return nil, err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	return slices.Clone(s.b.staff), nil
}

func (s staffAPI) Get(ctx context.Context, id string) (*domain.StaffMember, error) {
	if err := s.b.simulate(ctx, "staff.get"); err != nil {
		return nil, err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	stf, ok := s.b.staffMember(id)
	if !ok {
		return nil, fmt.Errorf("staff member %s: %w", id, client.ErrNotFound)
	}
	return &stf, nil
}

// ByService lists active staff offering serviceID.
func (s staffAPI) ByService(ctx context.Context, serviceID string) ([]domain.StaffMember, error) {
	if err := s.b.simulate(ctx, "staff.byService"); err != nil {
		return nil, err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if _, ok := s.b.service(serviceID); !ok {
		return nil, fmt.Errorf("service %s: %w", serviceID, client.ErrNotFound)
	}
	var out []domain.StaffMember
	for _, stf := range s.b.staff {
		if stf.Active && stf.CanPerform(serviceID) {
			out = append(out, stf)
		}
	}
	return out, nil
}

type settingsAPI struct{ b *Backend }

func (s settingsAPI) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	if err := s.b.simulate(ctx, "settings.get"); err != nil {
		return nil, err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	out := s.b.settings
	out.Hours = slices.Clone(out.Hours)
	return &out, nil
}

func (s settingsAPI) Save(ctx context.Context, in domain.BusinessSettings) (*domain.BusinessSettings, error) {
	if err := s.b.simulate(ctx, "settings.save"); err != nil {
		return nil, err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	in.BusinessID = s.b.businessID
	in.Hours = slices.Clone(in.Hours)
	in.UpdatedAt = s.b.now()
	s.b.settings = in
	return &in, nil
}

// Callers hold b.mu.
func (b *Backend) service(id string) (domain.Service, bool) {
	i := slices.IndexFunc(b.services, func(s domain.Service) bool { return s.ID == id })
	if i < 0 {
		return domain.Service{}, false
	}
	return b.services[i], true
}

// Callers hold b.mu.
func (b *Backend) staffMember(id string) (domain.StaffMember, bool) {
	i := slices.IndexFunc(b.staff, func(s domain.StaffMember) bool { return s.ID == id })
	if i < 0 {
		return domain.StaffMember{}, false
	}
	return b.staff[i], true
}
