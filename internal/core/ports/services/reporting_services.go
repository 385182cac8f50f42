package services

import (
	"context"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
)

// ReportingService defines the interface for building statements and portfolios
type ReportingService interface {
	// Statement builds a reconciled statement for one account. A non-empty
	// customerShortID must name a customer holding the account.
	Statement(ctx context.Context, accountID string, customerShortID string) (*domain.Statement, error)

	// Portfolio builds statements for every account held by a customer.
	Portfolio(ctx context.Context, customerShortID string) (*domain.Portfolio, error)
}

// PeriodSvc closes accounting periods.
type PeriodSvc interface {
	// RolloverPeriod applies interest to every account and then resets every withdrawal quota.
	RolloverPeriod(ctx context.Context, date string) (*domain.RolloverResult, error)
}
