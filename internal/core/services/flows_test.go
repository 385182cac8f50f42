package services_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/core/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/platform/config"
	"github.com/SscSPs/bank_ledger/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContainer(t *testing.T) *portssvc.ServiceContainer {
	t.Helper()
	cfg := &config.Config{
		DefaultInterestRatePercent: dec("0"),
		DefaultWithdrawLimit:       3,
		DefaultWithdrawalFee:       dec("2"),
	}
	return services.NewServiceContainer(cfg, memory.NewRepositoryProvider())
}

// seed opens the three accounts and customers used throughout these tests.
func seed(t *testing.T, c *portssvc.ServiceContainer) {
	t.Helper()
	ctx := context.Background()
	accounts := []dto.CreateAccountRequest{
		{AccountID: "10001", OwnerName: "Phuc", OpeningBalance: dec("800")},
		{AccountID: "20001", OwnerName: "Loc", Kind: "savings", OpeningBalance: dec("1200"),
			InterestRatePercent: ptr(dec("3")), WithdrawLimitPerMonth: ptr(2), WithdrawalFee: ptr(dec("5"))},
		{AccountID: "30001", OwnerName: "Tho", Kind: "savings", OpeningBalance: dec("2000"),
			InterestRatePercent: ptr(dec("3")), WithdrawLimitPerMonth: ptr(3), WithdrawalFee: ptr(dec("2"))},
	}
	for _, req := range accounts {
		_, err := c.Account.CreateAccount(ctx, req)
		require.NoError(t, err)
	}
	for _, cust := range []dto.CreateCustomerRequest{{ShortID: "01", Name: "Phuc"}, {ShortID: "02", Name: "Loc"}, {ShortID: "03", Name: "Tho"}} {
		_, err := c.Customer.CreateCustomer(ctx, cust)
		require.NoError(t, err)
	}
	for shortID, accountID := range map[string]string{"01": "10001", "02": "20001", "03": "30001"} {
		_, err := c.Customer.AddAccount(ctx, shortID, accountID)
		require.NoError(t, err)
	}
}

func TestCustomerService_Flow(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t)
	seed(t, c)

	_, err := c.Customer.CreateCustomer(ctx, dto.CreateCustomerRequest{ShortID: "01", Name: "Again"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = c.Customer.CreateCustomer(ctx, dto.CreateCustomerRequest{ShortID: "", Name: "Nobody"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = c.Customer.AddAccount(ctx, "01", "10001")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = c.Customer.AddAccount(ctx, "01", "99999")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = c.Customer.AddAccount(ctx, "99", "10001")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// One account may be shared by several customers.
	cust, err := c.Customer.AddAccount(ctx, "01", "30001")
	require.NoError(t, err)
	assert.Len(t, cust.Accounts(), 2)

	list, err := c.Customer.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestReportingService_StatementAndPortfolio(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t)
	seed(t, c)

	_, err := c.Account.Deposit(ctx, "10001", dto.AmountRequest{Amount: dec("200"), Date: "2025-09-17", Note: "Paycheck"})
	require.NoError(t, err)
	_, _, err = c.Account.Transfer(ctx, dto.TransferRequest{
		SourceAccountID: "10001", TargetAccountID: "20001", Amount: dec("150"), Date: "2025-09-17", Note: "Pay Loc",
	})
	require.NoError(t, err)

	statement, err := c.Reporting.Statement(ctx, "10001", "01")
	require.NoError(t, err)
	assert.True(t, statement.Reconciled)
	assert.Equal(t, "01", statement.CustomerShortID)
	assert.True(t, dec("850").Equal(statement.Account.Balance))
	assert.Len(t, statement.Account.History, 2)

	_, err = c.Reporting.Statement(ctx, "10001", "02")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = c.Reporting.Statement(ctx, "nope", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	portfolio, err := c.Reporting.Portfolio(ctx, "02")
	require.NoError(t, err)
	assert.Equal(t, "Loc", portfolio.Name)
	require.Len(t, portfolio.Statements, 1)
	assert.True(t, dec("1350").Equal(portfolio.TotalBalance))

	_, err = c.Reporting.Portfolio(ctx, "99")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPeriodService_RolloverAppliesInterestThenResetsQuota(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t)
	seed(t, c)

	for i := 0; i < 2; i++ {
		_, err := c.Account.Withdraw(ctx, "20001", dto.AmountRequest{Amount: dec("100"), Date: "2025-09-20"})
		require.NoError(t, err)
	}

	result, err := c.Period.RolloverPeriod(ctx, "2025-09-30")
	require.NoError(t, err)

	assert.Equal(t, []string{"20001", "30001"}, result.AccountIDs)
	assert.True(t, dec("30").Equal(result.Interest["20001"]), "got %s", result.Interest["20001"])
	assert.True(t, dec("60").Equal(result.Interest["30001"]))
	assert.True(t, dec("90").Equal(result.TotalInterest()))
	assert.Equal(t, 2, result.QuotasReset)

	// Quota is fresh, so the next withdrawal carries no fee.
	acc, err := c.Account.Withdraw(ctx, "20001", dto.AmountRequest{Amount: dec("10"), Date: "2025-10-01"})
	require.NoError(t, err)
	assert.True(t, dec("1020").Equal(acc.Balance))

	_, err = c.Period.RolloverPeriod(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPeriodService_RolloverHonoursCancellation(t *testing.T) {
	c := newContainer(t)
	seed(t, c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Period.RolloverPeriod(ctx, "2025-09-30")
	assert.ErrorIs(t, err, context.Canceled)

	var appErr *apperrors.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
	}
}

// cancelAfterFirstCheck reports cancellation from its second Err call onward.
type cancelAfterFirstCheck struct {
	context.Context
	calls atomic.Int32
}

func (c *cancelAfterFirstCheck) Err() error {
	if c.calls.Add(1) > 1 {
		return context.Canceled
	}
	return nil
}

func interestRecords(t *testing.T, c *portssvc.ServiceContainer, accountID string) int {
	t.Helper()
	acc, err := c.Account.GetAccount(context.Background(), accountID)
	require.NoError(t, err)
	n := 0
	for _, txn := range acc.History() {
		if txn.Kind == domain.Interest {
			n++
		}
	}
	return n
}

func TestPeriodService_RolloverCompletesOnceStarted(t *testing.T) {
	c := newContainer(t)
	seed(t, c)

	ctx := &cancelAfterFirstCheck{Context: context.Background()}
	result, err := c.Period.RolloverPeriod(ctx, "2025-09-30")
	require.NoError(t, err)

	// Every savings account rolled over exactly once, none left half done.
	assert.Equal(t, []string{"20001", "30001"}, result.AccountIDs)
	assert.Equal(t, 2, result.QuotasReset)
	assert.Equal(t, 1, interestRecords(t, c, "20001"))
	assert.Equal(t, 1, interestRecords(t, c, "30001"))

	// The caller's context is now cancelled, so a retry changes nothing.
	_, err = c.Period.RolloverPeriod(ctx, "2025-09-30")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, interestRecords(t, c, "20001"))
	assert.Equal(t, 1, interestRecords(t, c, "30001"))

	loc, err := c.Account.GetAccount(context.Background(), "20001")
	require.NoError(t, err)
	assert.True(t, dec("1236").Equal(loc.Balance()), "got %s", loc.Balance())
}
