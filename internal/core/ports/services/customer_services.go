package services

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/dto"
)

// CustomerReaderSvc defines read operations for customers
type CustomerReaderSvc interface {
	GetCustomer(ctx context.Context, shortID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customers
type CustomerWriterSvc interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)

	// AddAccount attaches an existing account to the customer.
	AddAccount(ctx context.Context, shortID string, accountID string) (*domain.Customer, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
