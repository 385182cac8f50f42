package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/core/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/platform/config"
	"github.com/SscSPs/bank_ledger/internal/reporting"
	"github.com/SscSPs/bank_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newDemoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Replay a sample scenario and print every customer portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
			slog.SetDefault(logger)

			container := services.NewServiceContainer(cfg, memory.NewRepositoryProvider())
			return runDemo(cmd.Context(), container, cmd.OutOrStdout())
		},
	}
}

type demoCustomer struct {
	shortID string
	name    string
	account dto.CreateAccountRequest
}

func demoCustomers() []demoCustomer {
	d := decimal.RequireFromString
	ptr := func(v decimal.Decimal) *decimal.Decimal { return &v }
	limit := func(v int) *int { return &v }

	return []demoCustomer{
		{"01", "Phuc", dto.CreateAccountRequest{
			AccountID: "10001", OwnerName: "Phuc", Kind: string(domain.Standard), OpeningBalance: d("800"),
		}},
		{"02", "Loc", dto.CreateAccountRequest{
			AccountID: "20001", OwnerName: "Loc", Kind: string(domain.Savings), OpeningBalance: d("1200"),
			InterestRatePercent: ptr(d("3")), WithdrawLimitPerMonth: limit(2), WithdrawalFee: ptr(d("5")),
		}},
		{"03", "Tho", dto.CreateAccountRequest{
			AccountID: "30001", OwnerName: "Tho", Kind: string(domain.Savings), OpeningBalance: d("2000"),
			InterestRatePercent: ptr(d("3")), WithdrawLimitPerMonth: limit(3), WithdrawalFee: ptr(d("2")),
		}},
	}
}

// runDemo opens the sample accounts, drives a month of activity through the
// services and writes each customer's portfolio to out.
func runDemo(ctx context.Context, c *portssvc.ServiceContainer, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	customers := demoCustomers()
	for _, dc := range customers {
		if _, err := c.Account.CreateAccount(ctx, dc.account); err != nil {
			return err
		}
		if _, err := c.Customer.CreateCustomer(ctx, dto.CreateCustomerRequest{ShortID: dc.shortID, Name: dc.name}); err != nil {
			return err
		}
		if _, err := c.Customer.AddAccount(ctx, dc.shortID, dc.account.AccountID); err != nil {
			return err
		}
	}

	steps := []func() error{
		func() error { return deposit(ctx, c, "10001", "200", "2025-09-17", "Paycheck") },
		func() error { return withdraw(ctx, c, "10001", "100", "2025-09-17", "ATM") },
		func() error { return transfer(ctx, c, "10001", "20001", "150", "2025-09-17", "Pay Loc") },

		func() error { return deposit(ctx, c, "20001", "300", "2025-09-19", "Bonus") },
		func() error { return withdraw(ctx, c, "20001", "50", "2025-09-20", "Groceries") },
		func() error { return withdraw(ctx, c, "20001", "25", "2025-09-21", "Extra1") },
		func() error { return withdraw(ctx, c, "20001", "30", "2025-09-22", "Extra2") },
		func() error { return applyInterest(ctx, c, "20001", "2025-09-30") },

		func() error { return deposit(ctx, c, "30001", "500", "2025-09-17", "Bonus") },
		func() error { return withdraw(ctx, c, "30001", "250", "2025-09-17", "Shopping") },
		func() error { return applyInterest(ctx, c, "30001", "2025-09-30") },

		func() error {
			return transfer(ctx, c, "10001", "20001", "300", "2025-10-01", "Phuc sends money to Loc")
		},
		func() error {
			return transfer(ctx, c, "20001", "30001", "100", "2025-10-01", "Loc sends money to Tho")
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	for _, dc := range customers {
		portfolio, err := c.Reporting.Portfolio(ctx, dc.shortID)
		if err != nil {
			return err
		}
		if err := reporting.WritePortfolio(out, *portfolio); err != nil {
			return err
		}
	}
	return nil
}

func deposit(ctx context.Context, c *portssvc.ServiceContainer, id, amount, date, note string) error {
	_, err := c.Account.Deposit(ctx, id, dto.AmountRequest{Amount: decimal.RequireFromString(amount), Date: date, Note: note})
	return err
}

func withdraw(ctx context.Context, c *portssvc.ServiceContainer, id, amount, date, note string) error {
	_, err := c.Account.Withdraw(ctx, id, dto.AmountRequest{Amount: decimal.RequireFromString(amount), Date: date, Note: note})
	return err
}

func applyInterest(ctx context.Context, c *portssvc.ServiceContainer, id, date string) error {
	_, _, err := c.Account.ApplyInterest(ctx, id, date)
	return err
}

func transfer(ctx context.Context, c *portssvc.ServiceContainer, from, to, amount, date, note string) error {
	_, _, err := c.Account.Transfer(ctx, dto.TransferRequest{
		SourceAccountID: from,
		TargetAccountID: to,
		Amount:          decimal.RequireFromString(amount),
		Date:            date,
		Note:            note,
	})
	return err
}
