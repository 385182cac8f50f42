package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

// CustomerReader defines read operations for customers.
type CustomerReader interface {
	FindCustomerByID(ctx context.Context, shortID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
}

// CustomerWriter defines write operations for customers.
type CustomerWriter interface {
	SaveCustomer(ctx context.Context, customer *domain.Customer) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
