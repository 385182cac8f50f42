package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
// Savings terms left nil fall back to the configured defaults.
type CreateAccountRequest struct {
	AccountID             string           `json:"accountID" binding:"omitempty,max=64"` // Optional, generated when empty
	OwnerName             string           `json:"ownerName" binding:"required"`
	Kind                  string           `json:"kind" binding:"omitempty,accountkind"`
	OpeningBalance        decimal.Decimal  `json:"openingBalance" binding:"decimal_nonneg"`
	InterestRatePercent   *decimal.Decimal `json:"interestRatePercent" binding:"omitempty,decimal_nonneg"`
	WithdrawLimitPerMonth *int             `json:"withdrawLimitPerMonth" binding:"omitempty,min=0"`
	WithdrawalFee         *decimal.Decimal `json:"withdrawalFee" binding:"omitempty,decimal_nonneg"`
}

// AmountRequest is the body of deposit and withdrawal calls.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"` // Must be positive; checked by the ledger
	Date   string          `json:"date"` // Opaque label, stored as given; "N/A" when empty
	Note   string          `json:"note" binding:"max=256"`
}

// InterestRequest is the body of an interest accrual call.
type InterestRequest struct {
	Date string `json:"date"`
}

// SavingsResponse describes the quota state of a savings account.
type SavingsResponse struct {
	InterestRatePercent    decimal.Decimal `json:"interestRatePercent"`
	WithdrawLimitPerMonth  int             `json:"withdrawLimitPerMonth"`
	WithdrawCountThisMonth int             `json:"withdrawCountThisMonth"`
	WithdrawalFee          decimal.Decimal `json:"withdrawalFee"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string             `json:"accountID"`
	OwnerName        string             `json:"ownerName"`
	Kind             domain.AccountKind `json:"kind"`
	StartingBalance  decimal.Decimal    `json:"startingBalance"`
	Balance          decimal.Decimal    `json:"balance"`
	TransactionCount int                `json:"transactionCount"`
	Savings          *SavingsResponse   `json:"savings,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	LastUpdatedAt    time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.AccountSnapshot to AccountResponse DTO
func ToAccountResponse(snap *domain.AccountSnapshot) AccountResponse {
	resp := AccountResponse{
		AccountID:        snap.AccountID,
		OwnerName:        snap.OwnerName,
		Kind:             snap.Kind,
		StartingBalance:  snap.StartingBalance,
		Balance:          snap.Balance,
		TransactionCount: len(snap.History),
		CreatedAt:        snap.CreatedAt,
		LastUpdatedAt:    snap.LastUpdatedAt,
	}
	if snap.Savings != nil {
		resp.Savings = &SavingsResponse{
			InterestRatePercent:    snap.Savings.InterestRatePercent,
			WithdrawLimitPerMonth:  snap.Savings.WithdrawLimitPerMonth,
			WithdrawCountThisMonth: snap.Savings.WithdrawCountThisMonth,
			WithdrawalFee:          snap.Savings.WithdrawalFee,
		}
	}
	return resp
}

// ToListAccountResponse converts a slice of snapshots to AccountResponse DTOs
func ToListAccountResponse(snaps []domain.AccountSnapshot) []AccountResponse {
	res := make([]AccountResponse, len(snaps))
	for i := range snaps {
		res[i] = ToAccountResponse(&snaps[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
