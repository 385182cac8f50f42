// Package reporting renders statements and portfolios as plain-text tables.
package reporting

import (
	"fmt"
	"io"
	"strconv"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/utils/accounting"
	"github.com/olekukonko/tablewriter"
)

const (
	amountPlaces = 2
	separator    = "-----------------------------------"
)

// WriteStatement prints one account's ledger followed by its final balance.
func WriteStatement(w io.Writer, st domain.Statement) error {
	snap := st.Account
	if _, err := fmt.Fprintf(w, "%s (ID: %s, Account: %s, Starting Balance: %s)\n",
		snap.OwnerName, st.CustomerShortID, snap.AccountID,
		accounting.FormatAmount(snap.StartingBalance, amountPlaces)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Date", "Type", "Amount", "Note", "Balance"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
	})
	for i, txn := range snap.History {
		table.Append([]string{
			strconv.Itoa(i + 1),
			txn.Date,
			txn.Kind.Label(),
			accounting.FormatAmount(txn.Amount, amountPlaces),
			txn.Note,
			accounting.FormatAmount(txn.BalanceAfter, amountPlaces),
		})
	}
	table.Render()

	if !st.Reconciled {
		if _, err := fmt.Fprintln(w, "WARNING: ledger does not reconcile with balance"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Final Balance: %s\n%s\n\n",
		accounting.FormatAmount(snap.Balance, amountPlaces), separator)
	return err
}

// WritePortfolio prints a customer heading and one statement per account.
func WritePortfolio(w io.Writer, p domain.Portfolio) error {
	if _, err := fmt.Fprintf(w, "Customer %s (ID: %s)\n", p.Name, p.ShortID); err != nil {
		return err
	}
	for _, st := range p.Statements {
		if err := WriteStatement(w, st); err != nil {
			return fmt.Errorf("statement for account %s: %w", st.Account.AccountID, err)
		}
	}
	if len(p.Statements) > 1 {
		_, err := fmt.Fprintf(w, "Total Balance: %s\n\n", accounting.FormatAmount(p.TotalBalance, amountPlaces))
		return err
	}
	return nil
}

// WriteRollover summarises the interest credited by a period rollover.
func WriteRollover(w io.Writer, r domain.RolloverResult) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Account", "Interest"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, id := range r.AccountIDs {
		table.Append([]string{id, accounting.FormatAmount(r.Interest[id], amountPlaces)})
	}
	table.SetFooter([]string{"Total", accounting.FormatAmount(r.TotalInterest(), amountPlaces)})
	table.Render()
	_, err := fmt.Fprintf(w, "Period closed %s: %d withdrawal quotas reset\n", r.Date, r.QuotasReset)
	return err
}
