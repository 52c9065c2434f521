package ports

import (
	"context"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

// ServiceRepository persists the service catalog.
type ServiceRepository interface {
	List(ctx context.Context, businessID string) ([]domain.Service, error)
	FindByID(ctx context.Context, id, businessID string) (*domain.Service, error)
	FindByIDs(ctx context.Context, ids []string, businessID string) ([]domain.Service, error)
	Upsert(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id, businessID string) error
}

// StaffRepository persists staff members.
type StaffRepository interface {
	List(ctx context.Context, businessID string) ([]domain.StaffMember, error)
	FindByID(ctx context.Context, id, businessID string) (*domain.StaffMember, error)
	FindByService(ctx context.Context, serviceID, businessID string) ([]domain.StaffMember, error)
	Upsert(ctx context.Context, m *domain.StaffMember) error
	Delete(ctx context.Context, id, businessID string) error
}

// CatalogService exposes services and staff.
type CatalogService interface {
	ListServices(ctx context.Context, businessID string) ([]domain.Service, error)
	GetService(ctx context.Context, id, businessID string) (*domain.Service, error)
	ListServicesByStaff(ctx context.Context, staffID, businessID string) ([]domain.Service, error)
	SaveService(ctx context.Context, s domain.Service) (*domain.Service, error)
	DeleteService(ctx context.Context, id, businessID string) error

	ListStaff(ctx context.Context, businessID string) ([]domain.StaffMember, error)
	GetStaff(ctx context.Context, id, businessID string) (*domain.StaffMember, error)
	ListStaffByService(ctx context.Context, serviceID, businessID string) ([]domain.StaffMember, error)
	SaveStaff(ctx context.Context, m domain.StaffMember) (*domain.StaffMember, error)
	DeleteStaff(ctx context.Context, id, businessID string) error
}
