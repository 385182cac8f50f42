package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
)

// CustomerRepository indexes customers by their short identifier.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func newCustomerRepository() *CustomerRepository {
	return &CustomerRepository{customers: make(map[string]*domain.Customer)}
}

var _ portsrepo.CustomerRepositoryFacade = (*CustomerRepository)(nil)

// SaveCustomer registers a new customer.
func (r *CustomerRepository) SaveCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer == nil || customer.ShortID() == "" {
		return fmt.Errorf("%w: customer must have a short ID", apperrors.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.customers[customer.ShortID()]; exists {
		return fmt.Errorf("%w: customer '%s' already exists", apperrors.ErrDuplicate, customer.ShortID())
	}
	r.customers[customer.ShortID()] = customer
	return nil
}

func (r *CustomerRepository) FindCustomerByID(ctx context.Context, shortID string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[shortID]
	if !ok {
		return nil, fmt.Errorf("customer '%s': %w", shortID, apperrors.ErrNotFound)
	}
	return c, nil
}

// ListCustomers returns all customers ordered by short ID.
func (r *CustomerRepository) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShortID() < out[j].ShortID() })
	return out, nil
}
