package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest registers a customer under an external short identifier.
type CreateCustomerRequest struct {
	ShortID string `json:"shortID" binding:"required,max=32"`
	Name    string `json:"name" binding:"required"`
}

// AddCustomerAccountRequest attaches an existing account to a customer.
type AddCustomerAccountRequest struct {
	AccountID string `json:"accountID" binding:"required"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	ShortID    string    `json:"shortID"`
	Name       string    `json:"name"`
	AccountIDs []string  `json:"accountIDs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	accounts := c.Accounts()
	ids := make([]string, len(accounts))
	for i, acc := range accounts {
		ids[i] = acc.ID()
	}
	return CustomerResponse{
		ShortID:    c.ShortID(),
		Name:       c.Name(),
		AccountIDs: ids,
		CreatedAt:  c.Audit().CreatedAt,
	}
}

// StatementResponse is the JSON form of an account statement.
type StatementResponse struct {
	CustomerShortID string                `json:"customerShortID,omitempty"`
	Account         AccountResponse       `json:"account"`
	Transactions    []TransactionResponse `json:"transactions"`
	FinalBalance    decimal.Decimal       `json:"finalBalance"`
	Reconciled      bool                  `json:"reconciled"`
}

// ToStatementResponse converts a domain.Statement to StatementResponse DTO
func ToStatementResponse(st *domain.Statement) StatementResponse {
	txns := make([]TransactionResponse, len(st.Account.History))
	for i, txn := range st.Account.History {
		txns[i] = ToTransactionResponse(i+1, txn)
	}
	return StatementResponse{
		CustomerShortID: st.CustomerShortID,
		Account:         ToAccountResponse(&st.Account),
		Transactions:    txns,
		FinalBalance:    st.Account.Balance,
		Reconciled:      st.Reconciled,
	}
}

// PortfolioResponse is the JSON form of a customer portfolio.
type PortfolioResponse struct {
	ShortID      string              `json:"shortID"`
	Name         string              `json:"name"`
	Statements   []StatementResponse `json:"statements"`
	TotalBalance decimal.Decimal     `json:"totalBalance"`
}

// ToPortfolioResponse converts a domain.Portfolio to PortfolioResponse DTO
func ToPortfolioResponse(p *domain.Portfolio) PortfolioResponse {
	statements := make([]StatementResponse, len(p.Statements))
	for i := range p.Statements {
		statements[i] = ToStatementResponse(&p.Statements[i])
	}
	return PortfolioResponse{
		ShortID:      p.ShortID,
		Name:         p.Name,
		Statements:   statements,
		TotalBalance: p.TotalBalance,
	}
}
