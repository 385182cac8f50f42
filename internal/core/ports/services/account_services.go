package services

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves a specific account by its unique identifier.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by identifier.
	ListAccounts(ctx context.Context, limit int, offset int) ([]*domain.Account, error)

	// ListTransactions returns one page of an account's ledger in append order.
	ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a new standard or savings account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
}

// AccountOperationsSvc defines balance-changing operations on a single account.
type AccountOperationsSvc interface {
	Deposit(ctx context.Context, accountID string, req dto.AmountRequest) (*domain.AccountSnapshot, error)
	Withdraw(ctx context.Context, accountID string, req dto.AmountRequest) (*domain.AccountSnapshot, error)

	// ApplyInterest accrues interest and returns the credited amount.
	ApplyInterest(ctx context.Context, accountID string, date string) (*domain.AccountSnapshot, decimal.Decimal, error)

	// ResetWithdrawCount starts a new quota period. Standard accounts yield apperrors.ErrValidation.
	ResetWithdrawCount(ctx context.Context, accountID string) (*domain.AccountSnapshot, error)
}

// TransferSvc moves money between two accounts.
type TransferSvc interface {
	Transfer(ctx context.Context, req dto.TransferRequest) (source *domain.AccountSnapshot, target *domain.AccountSnapshot, err error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountOperationsSvc
	TransferSvc
}
