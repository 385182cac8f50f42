package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	savingsDefaults domain.SavingsTerms
}

// ServiceOption is a functional option for configuring the account service
type ServiceOption func(*accountService)

// WithSavingsDefaults sets the terms used for savings accounts when a request omits them.
func WithSavingsDefaults(terms domain.SavingsTerms) ServiceOption {
	return func(s *accountService) {
		s.savingsDefaults = terms
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		savingsDefaults: domain.SavingsTerms{
			InterestRatePercent:   decimal.Zero,
			WithdrawLimitPerMonth: 3,
			WithdrawalFee:         decimal.NewFromInt(2),
		},
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	kind, err := domain.ParseAccountKind(req.Kind)
	if err != nil {
		s.LogWarn(ctx, err, "Invalid account kind", slog.String("kind", req.Kind))
		return nil, err
	}
	if strings.TrimSpace(req.OwnerName) == "" {
		return nil, fmt.Errorf("%w: owner name is required", apperrors.ErrValidation)
	}
	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
	}

	accountID := strings.TrimSpace(req.AccountID)
	if accountID == "" {
		accountID = uuid.NewString()
	}

	var account *domain.Account
	switch kind {
	case domain.Savings:
		terms := s.savingsDefaults
		if req.InterestRatePercent != nil {
			terms.InterestRatePercent = *req.InterestRatePercent
		}
		if req.WithdrawLimitPerMonth != nil {
			terms.WithdrawLimitPerMonth = *req.WithdrawLimitPerMonth
		}
		if req.WithdrawalFee != nil {
			terms.WithdrawalFee = *req.WithdrawalFee
		}
		if err := terms.Validate(); err != nil {
			s.LogWarn(ctx, err, "Invalid savings terms", slog.String("account_id", accountID))
			return nil, err
		}
		account = domain.NewSavingsAccount(accountID, req.OwnerName, req.OpeningBalance, terms)
	default:
		account = domain.NewAccount(accountID, req.OwnerName, req.OpeningBalance)
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", accountID),
		slog.String("kind", string(kind)),
		slog.String("opening_balance", req.OpeningBalance.String()))
	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	s.LogDebug(ctx, "Account retrieved successfully", slog.String("account_id", accountID))
	return account, nil
}

// ListAccounts retrieves a page of accounts ordered by identifier.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]*domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []*domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

// ListTransactions pages through an account's ledger using an opaque offset token.
func (s *accountService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	offset := 0
	if params.NextToken != nil && *params.NextToken != "" {
		offset, err = pagination.DecodeHistoryToken(*params.NextToken, accountID)
		if err != nil {
			s.LogWarn(ctx, err, "Invalid pagination token", slog.String("account_id", accountID))
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	history := account.History()
	if offset > len(history) {
		offset = len(history)
	}
	end := offset + limit
	if end > len(history) {
		end = len(history)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, end-offset),
	}
	for i := offset; i < end; i++ {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(i+1, history[i]))
	}
	if end < len(history) {
		token := pagination.EncodeHistoryToken(accountID, end)
		resp.NextToken = &token
	}

	s.LogDebug(ctx, "Transactions listed successfully",
		slog.String("account_id", accountID),
		slog.Int("count", len(resp.Transactions)))
	return resp, nil
}

// Deposit returns the account as it stood right after the deposit.
func (s *accountService) Deposit(ctx context.Context, accountID string, req dto.AmountRequest) (*domain.AccountSnapshot, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	snap, err := account.DepositSnapshot(req.Amount, s.dateOrDefault(req.Date), req.Note)
	if err != nil {
		s.logFailure(ctx, err, "Deposit rejected",
			slog.String("account_id", accountID),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}
	s.LogInfo(ctx, "Deposit recorded",
		slog.String("account_id", accountID),
		slog.String("amount", req.Amount.String()))
	return &snap, nil
}

func (s *accountService) Withdraw(ctx context.Context, accountID string, req dto.AmountRequest) (*domain.AccountSnapshot, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	snap, err := account.WithdrawSnapshot(req.Amount, s.dateOrDefault(req.Date), req.Note)
	if err != nil {
		s.logFailure(ctx, err, "Withdrawal rejected",
			slog.String("account_id", accountID),
			slog.String("amount", req.Amount.String()))
		return nil, err
	}
	s.LogInfo(ctx, "Withdrawal recorded",
		slog.String("account_id", accountID),
		slog.String("amount", req.Amount.String()))
	return &snap, nil
}

// ApplyInterest accrues interest on one account. Standard accounts accrue nothing.
func (s *accountService) ApplyInterest(ctx context.Context, accountID string, date string) (*domain.AccountSnapshot, decimal.Decimal, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	snap, amount, applied := account.ApplyInterestSnapshot(s.dateOrDefault(date))
	if applied {
		s.LogInfo(ctx, "Interest applied",
			slog.String("account_id", accountID),
			slog.String("amount", amount.String()))
	} else {
		s.LogDebug(ctx, "Account does not accrue interest", slog.String("account_id", accountID))
	}
	return &snap, amount, nil
}

func (s *accountService) ResetWithdrawCount(ctx context.Context, accountID string) (*domain.AccountSnapshot, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	snap, ok := account.ResetWithdrawCountSnapshot()
	if !ok {
		err := fmt.Errorf("%w: account %s has no withdrawal quota", apperrors.ErrValidation, accountID)
		s.LogWarn(ctx, err, "Withdraw count reset rejected", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Withdraw count reset", slog.String("account_id", accountID))
	return &snap, nil
}

// Transfer moves money between two registered accounts.
func (s *accountService) Transfer(ctx context.Context, req dto.TransferRequest) (*domain.AccountSnapshot, *domain.AccountSnapshot, error) {
	if req.SourceAccountID == req.TargetAccountID {
		err := fmt.Errorf("%w: %s", apperrors.ErrSameAccount, req.SourceAccountID)
		s.LogWarn(ctx, err, "Transfer rejected", slog.String("account_id", req.SourceAccountID))
		return nil, nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.SourceAccountID, req.TargetAccountID})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load transfer accounts")
		}
		return nil, nil, err
	}
	source, target := accounts[req.SourceAccountID], accounts[req.TargetAccountID]

	srcSnap, dstSnap, err := domain.TransferSnapshots(source, target, req.Amount, s.dateOrDefault(req.Date), req.Note)
	if err != nil {
		s.logFailure(ctx, err, "Transfer rejected",
			slog.String("source_account_id", req.SourceAccountID),
			slog.String("target_account_id", req.TargetAccountID),
			slog.String("amount", req.Amount.String()))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("source_account_id", req.SourceAccountID),
		slog.String("target_account_id", req.TargetAccountID),
		slog.String("amount", req.Amount.String()))
	return &srcSnap, &dstSnap, nil
}
