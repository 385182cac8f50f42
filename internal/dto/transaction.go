package dto

import (
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse is one ledger entry as returned by the API.
type TransactionResponse struct {
	Sequence     int                    `json:"sequence"` // Position in the ledger, starting at 1
	Kind         domain.TransactionKind `json:"kind"`
	KindLabel    string                 `json:"kindLabel"`
	Amount       decimal.Decimal        `json:"amount"`
	Date         string                 `json:"date"`
	Note         string                 `json:"note"`
	BalanceAfter decimal.Decimal        `json:"balanceAfter"`
}

// ToTransactionResponse converts a ledger entry at position seq (1-based).
func ToTransactionResponse(seq int, txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		Sequence:     seq,
		Kind:         txn.Kind,
		KindLabel:    txn.Kind.Label(),
		Amount:       txn.Amount,
		Date:         txn.Date,
		Note:         txn.Note,
		BalanceAfter: txn.BalanceAfter,
	}
}

// ListTransactionsParams defines query parameters for paging through a ledger.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps one page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// TransferRequest moves money between two accounts.
type TransferRequest struct {
	SourceAccountID string          `json:"sourceAccountID" binding:"required"`
	TargetAccountID string          `json:"targetAccountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date"`
	Note            string          `json:"note" binding:"max=256"`
}

// TransferResponse returns both sides after a successful transfer.
type TransferResponse struct {
	Source AccountResponse `json:"source"`
	Target AccountResponse `json:"target"`
}

// RolloverRequest closes an accounting period.
type RolloverRequest struct {
	Date string `json:"date" binding:"required"`
}

// InterestEntry records the interest credited to one account during a rollover.
type InterestEntry struct {
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
}

// RolloverResponse summarises a period rollover.
type RolloverResponse struct {
	Date          string          `json:"date"`
	Interest      []InterestEntry `json:"interest"`
	QuotasReset   int             `json:"quotasReset"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
}
