package handlers_test

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]*domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) Deposit(ctx context.Context, accountID string, req dto.AmountRequest) (*domain.AccountSnapshot, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSnapshot), args.Error(1)
}

func (m *MockAccountService) Withdraw(ctx context.Context, accountID string, req dto.AmountRequest) (*domain.AccountSnapshot, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSnapshot), args.Error(1)
}

func (m *MockAccountService) ApplyInterest(ctx context.Context, accountID string, date string) (*domain.AccountSnapshot, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, date)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.AccountSnapshot), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockAccountService) ResetWithdrawCount(ctx context.Context, accountID string) (*domain.AccountSnapshot, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountSnapshot), args.Error(1)
}

func (m *MockAccountService) Transfer(ctx context.Context, req dto.TransferRequest) (*domain.AccountSnapshot, *domain.AccountSnapshot, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.AccountSnapshot), args.Get(1).(*domain.AccountSnapshot), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, shortID string) (*domain.Customer, error) {
	args := m.Called(ctx, shortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) AddAccount(ctx context.Context, shortID string, accountID string) (*domain.Customer, error) {
	args := m.Called(ctx, shortID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Statement(ctx context.Context, accountID string, customerShortID string) (*domain.Statement, error) {
	args := m.Called(ctx, accountID, customerShortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

func (m *MockReportingService) Portfolio(ctx context.Context, customerShortID string) (*domain.Portfolio, error) {
	args := m.Called(ctx, customerShortID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Portfolio), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) RolloverPeriod(ctx context.Context, date string) (*domain.RolloverResult, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RolloverResult), args.Error(1)
}

var _ portssvc.PeriodSvc = (*MockPeriodService)(nil)
