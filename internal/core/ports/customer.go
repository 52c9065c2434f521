package ports

import (
	"context"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

// CustomerRepository persists customers.
type CustomerRepository interface {
	List(ctx context.Context, businessID string) ([]domain.Customer, error)
	FindByID(ctx context.Context, id, businessID string) (*domain.Customer, error)
	Upsert(ctx context.Context, c *domain.Customer) error
}

// CustomerService backs the admin customer screen.
type CustomerService interface {
	List(ctx context.Context, businessID string) ([]domain.Customer, error)
	Get(ctx context.Context, id, businessID string) (*domain.Customer, error)
	Save(ctx context.Context, c domain.Customer) (*domain.Customer, error)
}
