package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo  portsrepo.AccountReader
	customerRepo portsrepo.CustomerReader
}

// NewReportingService creates a new reporting service
func NewReportingService(accountRepo portsrepo.AccountReader, customerRepo portsrepo.CustomerReader) portssvc.ReportingService {
	return &reportingService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Statement snapshots one account and checks that its ledger replays to its balance.
func (s *reportingService) Statement(ctx context.Context, accountID string, customerShortID string) (*domain.Statement, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for statement", slog.String("account_id", accountID))
		}
		return nil, err
	}

	if customerShortID != "" {
		customer, err := s.customerRepo.FindCustomerByID(ctx, customerShortID)
		if err != nil {
			return nil, err
		}
		if !holds(customer, account) {
			return nil, fmt.Errorf("account %s held by customer %s: %w", accountID, customerShortID, apperrors.ErrNotFound)
		}
	}

	statement := s.buildStatement(ctx, customerShortID, account)
	s.LogDebug(ctx, "Statement generated",
		slog.String("account_id", accountID),
		slog.Int("transactions", len(statement.Account.History)))
	return &statement, nil
}

// Portfolio builds one statement per account, in the order they were added.
func (s *reportingService) Portfolio(ctx context.Context, customerShortID string) (*domain.Portfolio, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerShortID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer for portfolio", slog.String("customer_id", customerShortID))
		}
		return nil, err
	}

	accounts := customer.Accounts()
	portfolio := &domain.Portfolio{
		ShortID:      customer.ShortID(),
		Name:         customer.Name(),
		Statements:   make([]domain.Statement, 0, len(accounts)),
		TotalBalance: decimal.Zero,
	}
	for _, account := range accounts {
		statement := s.buildStatement(ctx, customer.ShortID(), account)
		portfolio.TotalBalance = portfolio.TotalBalance.Add(statement.Account.Balance)
		portfolio.Statements = append(portfolio.Statements, statement)
	}

	s.LogDebug(ctx, "Portfolio generated",
		slog.String("customer_id", customerShortID),
		slog.Int("accounts", len(accounts)))
	return portfolio, nil
}

func (s *reportingService) buildStatement(ctx context.Context, customerShortID string, account *domain.Account) domain.Statement {
	snap := account.Snapshot()
	statement := domain.Statement{
		CustomerShortID: customerShortID,
		Account:         snap,
		Reconciled:      true,
	}
	if err := accounting.Reconcile(snap); err != nil {
		s.LogError(ctx, err, "Ledger does not reconcile", slog.String("account_id", snap.AccountID))
		statement.Reconciled = false
	}
	return statement
}

func holds(customer *domain.Customer, account *domain.Account) bool {
	for _, acc := range customer.Accounts() {
		if acc.Equal(account) {
			return true
		}
	}
	return false
}
