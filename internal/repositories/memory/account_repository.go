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

// AccountRepository keeps live accounts addressable by identifier.
// It only guards the index; balance changes are serialized by each account's own lock.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// newAccountRepository creates an empty account registry.
func newAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]*domain.Account)}
}

// Ensure AccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

// SaveAccount registers a new account.
func (r *AccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	if account == nil || account.ID() == "" {
		return fmt.Errorf("%w: account must have an identifier", apperrors.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.ID()]; exists {
		return fmt.Errorf("%w: account with ID '%s' already exists", apperrors.ErrDuplicate, account.ID())
	}
	r.accounts[account.ID()] = account
	return nil
}

// FindAccountByID retrieves a single account.
func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account with ID '%s': %w", accountID, apperrors.ErrNotFound)
	}
	return acc, nil
}

// FindAccountsByIDs retrieves several accounts at once. Duplicate IDs collapse.
func (r *AccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := make(map[string]*domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		acc, ok := r.accounts[id]
		if !ok {
			return nil, fmt.Errorf("account with ID '%s': %w", id, apperrors.ErrNotFound)
		}
		found[id] = acc
	}
	return found, nil
}

// ListAccounts returns a page of accounts in identifier order.
func (r *AccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]*domain.Account, error) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		r.mu.RUnlock()
		return []*domain.Account{}, nil
	}
	end := len(ids)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page := make([]*domain.Account, 0, end-offset)
	for _, id := range ids[offset:end] {
		page = append(page, r.accounts[id])
	}
	r.mu.RUnlock()
	return page, nil
}
