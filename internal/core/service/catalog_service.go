package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
)

// CatalogService serves services and staff, the reference data customers
// pick from when booking.
type CatalogService struct {
	services ports.ServiceRepository
	staff    ports.StaffRepository
	logger   zerolog.Logger
}

func NewCatalogService(services ports.ServiceRepository, staff ports.StaffRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{services: services, staff: staff, logger: logger}
}

func (s *CatalogService) ListServices(ctx context.Context, businessID string) ([]domain.Service, error) {
	return s.services.List(ctx, businessID)
}

func (s *CatalogService) GetService(ctx context.Context, id, businessID string) (*domain.Service, error) {
	return s.services.FindByID(ctx, id, businessID)
}

// ListServicesByStaff returns the services a staff member can perform.
func (s *CatalogService) ListServicesByStaff(ctx context.Context, staffID, businessID string) ([]domain.Service, error) {
	member, err := s.staff.FindByID(ctx, staffID, businessID)
	if err != nil {
		return nil, err
	}
	if len(member.ServiceIDs) == 0 {
		return []domain.Service{}, nil
	}
	return s.services.FindByIDs(ctx, member.ServiceIDs, businessID)
}

func (s *CatalogService) SaveService(ctx context.Context, svc domain.Service) (*domain.Service, error) {
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	if err := s.services.Upsert(ctx, &svc); err != nil {
		return nil, err
	}
	s.logger.Info().Str("service_id", svc.ID).Msg("service saved")
	return &svc, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id, businessID string) error {
	return s.services.Delete(ctx, id, businessID)
}

func (s *CatalogService) ListStaff(ctx context.Context, businessID string) ([]domain.StaffMember, error) {
	return s.staff.List(ctx, businessID)
}

func (s *CatalogService) GetStaff(ctx context.Context, id, businessID string) (*domain.StaffMember, error) {
	return s.staff.FindByID(ctx, id, businessID)
}

// ListStaffByService returns active staff offering serviceID.
func (s *CatalogService) ListStaffByService(ctx context.Context, serviceID, businessID string) ([]domain.StaffMember, error) {
	if _, err := s.services.FindByID(ctx, serviceID, businessID); err != nil {
		return nil, err
	}
	members, err := s.staff.FindByService(ctx, serviceID, businessID)
	if err != nil {
		return nil, err
	}
	active := make([]domain.StaffMember, 0, len(members))
	for _, m := range members {
		if m.Active {
			active = append(active, m)
		}
	}
	return active, nil
}

func (s *CatalogService) SaveStaff(ctx context.Context, m domain.StaffMember) (*domain.StaffMember, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := s.staff.Upsert(ctx, &m); err != nil {
		return nil, err
	}
	s.logger.Info().Str("staff_id", m.ID).Msg("staff member saved")
	return &m, nil
}

func (s *CatalogService) DeleteStaff(ctx context.Context, id, businessID string) error {
	return s.staff.Delete(ctx, id, businessID)
}
