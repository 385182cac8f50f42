package accounting

import (
	"fmt"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReplayBalance rebuilds a balance from the opening balance and the ledger.
func ReplayBalance(startingBalance decimal.Decimal, history []domain.Transaction) decimal.Decimal {
	balance := startingBalance
	for _, txn := range history {
		balance = balance.Add(txn.SignedAmount())
	}
	return balance
}

// Reconcile checks a snapshot against the ledger invariant: the replayed
// balance matches the current balance, and every record's BalanceAfter is
// explained by the records before it. Consecutive records may share a
// BalanceAfter when they were applied together (a withdrawal and its fee).
func Reconcile(snap domain.AccountSnapshot) error {
	replayed := ReplayBalance(snap.StartingBalance, snap.History)
	if !replayed.Equal(snap.Balance) {
		return fmt.Errorf("account %s: replayed balance %s does not match balance %s",
			snap.AccountID, replayed.String(), snap.Balance.String())
	}

	running := snap.StartingBalance
	for i, txn := range snap.History {
		running = running.Add(txn.SignedAmount())
		if txn.BalanceAfter.Equal(running) {
			continue
		}
		// A fee record follows its principal and both carry the final balance.
		if i+1 < len(snap.History) && snap.History[i+1].BalanceAfter.Equal(txn.BalanceAfter) &&
			running.Add(snap.History[i+1].SignedAmount()).Equal(txn.BalanceAfter) {
			continue
		}
		return fmt.Errorf("account %s: record %d balanceAfter %s, expected %s",
			snap.AccountID, i, txn.BalanceAfter.String(), running.String())
	}
	return nil
}

// FormatAmount renders an amount with a fixed number of decimal places.
func FormatAmount(amount decimal.Decimal, places int32) string {
	return amount.StringFixed(places)
}
