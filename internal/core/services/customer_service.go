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
)

// customerService implements the CustomerSvcFacade interface
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	accountRepo  portsrepo.AccountReader
}

// NewCustomerService creates a new customer service with the provided dependencies
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	shortID := strings.TrimSpace(req.ShortID)
	if shortID == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: short ID and name are required", apperrors.ErrValidation)
	}

	customer := domain.NewCustomer(shortID, req.Name)
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, err, "Customer already exists", slog.String("customer_id", shortID))
		} else {
			s.LogError(ctx, err, "Failed to save customer", slog.String("customer_id", shortID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Customer created successfully", slog.String("customer_id", shortID))
	return customer, nil
}

func (s *customerService) GetCustomer(ctx context.Context, shortID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, shortID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer", slog.String("customer_id", shortID))
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// AddAccount links an existing account to a customer.
func (s *customerService) AddAccount(ctx context.Context, shortID string, accountID string) (*domain.Customer, error) {
	customer, err := s.GetCustomer(ctx, shortID)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if err := customer.AddAccount(account); err != nil {
		s.LogWarn(ctx, err, "Account not added to customer",
			slog.String("customer_id", shortID),
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account added to customer",
		slog.String("customer_id", shortID),
		slog.String("account_id", accountID))
	return customer, nil
}
