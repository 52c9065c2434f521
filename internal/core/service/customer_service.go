package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
)

type CustomerService struct {
	repo ports.CustomerRepository
}

func NewCustomerService(repo ports.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) List(ctx context.Context, businessID string) ([]domain.Customer, error) {
	return s.repo.List(ctx, businessID)
}

func (s *CustomerService) Get(ctx context.Context, id, businessID string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id, businessID)
}

// Save creates the customer when it has no id, otherwise overwrites it while
// keeping the original creation time.
func (s *CustomerService) Save(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if c.Status == "" {
		c.Status = domain.CustomerActive
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
		c.CreatedAt = time.Now().UTC()
	} else {
		existing, err := s.repo.FindByID(ctx, c.ID, c.BusinessID)
		if err != nil {
			return nil, err
		}
		c.CreatedAt = existing.CreatedAt
	}
	if err := s.repo.Upsert(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
