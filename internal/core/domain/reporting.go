package domain

import "github.com/shopspring/decimal"

// Statement is a point-in-time view of one account's ledger.
type Statement struct {
	CustomerShortID string // Empty when the account is printed on its own
	Account         AccountSnapshot
	Reconciled      bool // Replayed history matches the balance
}

// Portfolio groups the statements of every account a customer holds.
type Portfolio struct {
	ShortID      string
	Name         string
	Statements   []Statement
	TotalBalance decimal.Decimal
}

// RolloverResult summarises one period rollover across all accounts.
type RolloverResult struct {
	Date        string
	Interest    map[string]decimal.Decimal // Keyed by account ID, only accounts that accrued
	AccountIDs  []string                   // Accounts that accrued, in ID order
	QuotasReset int
}

// TotalInterest sums the interest credited during the rollover.
func (r RolloverResult) TotalInterest() decimal.Decimal {
	total := decimal.Zero
	for _, amt := range r.Interest {
		total = total.Add(amt)
	}
	return total
}
