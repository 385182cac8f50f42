package domain

import "github.com/shopspring/decimal"

// TransactionKind classifies a balance-affecting event on an account.
type TransactionKind string

const (
	Deposit     TransactionKind = "DEPOSIT"
	Withdrawal  TransactionKind = "WITHDRAWAL"
	TransferIn  TransactionKind = "TRANSFER_IN"
	TransferOut TransactionKind = "TRANSFER_OUT"
	Interest    TransactionKind = "INTEREST"
)

// Label returns the human-readable name used on statements.
func (k TransactionKind) Label() string {
	switch k {
	case Deposit:
		return "Deposit"
	case Withdrawal:
		return "Withdrawal"
	case TransferIn:
		return "Transfer In"
	case TransferOut:
		return "Transfer Out"
	case Interest:
		return "Interest"
	default:
		return "Unknown"
	}
}

// IsCredit reports whether the kind adds to the balance.
func (k TransactionKind) IsCredit() bool {
	return k == Deposit || k == TransferIn || k == Interest
}

// Transaction is one entry in an account's ledger.
// Amount is the magnitude and the sign comes from Kind. The one exception is
// Interest accrued on a negative balance, whose Amount is itself negative.
type Transaction struct {
	Amount       decimal.Decimal `json:"amount"`
	Kind         TransactionKind `json:"kind"`
	Date         string          `json:"date"` // Opaque caller label, never parsed
	Note         string          `json:"note"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
}

// SignedAmount returns Amount with the sign implied by Kind.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind.IsCredit() {
		return t.Amount
	}
	return t.Amount.Neg()
}
