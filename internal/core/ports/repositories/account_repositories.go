package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

// AccountReader defines read operations for the account registry.
type AccountReader interface {
	// FindAccountByID retrieves a live account by its identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves several accounts; a missing one fails the whole call.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]*domain.Account, error)

	// ListAccounts returns accounts ordered by identifier. A limit <= 0 returns all of them.
	ListAccounts(ctx context.Context, limit int, offset int) ([]*domain.Account, error)
}

// AccountWriter defines write operations for the account registry.
type AccountWriter interface {
	// SaveAccount registers a new account. Identifiers must be unique.
	SaveAccount(ctx context.Context, account *domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
