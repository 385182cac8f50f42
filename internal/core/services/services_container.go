package services

import (
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithSavingsDefaults(domain.SavingsTerms{
			InterestRatePercent:   cfg.DefaultInterestRatePercent,
			WithdrawLimitPerMonth: cfg.DefaultWithdrawLimit,
			WithdrawalFee:         cfg.DefaultWithdrawalFee,
		}),
	)
	container.Customer = NewCustomerService(repos.CustomerRepo, repos.AccountRepo)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.CustomerRepo)
	container.Period = NewPeriodService(repos.AccountRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade  = (*accountService)(nil)
	_ portssvc.CustomerSvcFacade = (*customerService)(nil)
	_ portssvc.ReportingService  = (*reportingService)(nil)
	_ portssvc.PeriodSvc         = (*periodService)(nil)
)
