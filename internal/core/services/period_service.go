package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// periodService implements the PeriodSvc interface
type periodService struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewPeriodService creates a service that closes accounting periods.
func NewPeriodService(accountRepo portsrepo.AccountReader) portssvc.PeriodSvc {
	return &periodService{accountRepo: accountRepo}
}

var _ portssvc.PeriodSvc = (*periodService)(nil)

// RolloverPeriod visits every account in identifier order. Each account accrues
// interest for the closing period before its withdrawal quota is reset.
func (s *periodService) RolloverPeriod(ctx context.Context, date string) (*domain.RolloverResult, error) {
	if strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("%w: rollover date is required", apperrors.ErrValidation)
	}

	// Cancellation is checked once, before any account is touched. A started
	// rollover always visits every account.
	if err := ctx.Err(); err != nil {
		s.LogWarn(ctx, err, "Rollover cancelled before start", slog.String("date", date))
		return nil, apperrors.NewAppError(http.StatusServiceUnavailable, "period rollover cancelled", err)
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, 0, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for rollover")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	result := &domain.RolloverResult{
		Date:     date,
		Interest: make(map[string]decimal.Decimal),
	}
	for _, account := range accounts {
		if amount, applied := account.ApplyInterest(date); applied {
			result.Interest[account.ID()] = amount
			result.AccountIDs = append(result.AccountIDs, account.ID())
		}
		if account.ResetWithdrawCount() {
			result.QuotasReset++
		}
	}

	s.LogInfo(ctx, "Period rolled over",
		slog.String("date", date),
		slog.Int("accounts", len(accounts)),
		slog.Int("quotas_reset", result.QuotasReset),
		slog.String("total_interest", result.TotalInterest().String()))
	return result, nil
}
