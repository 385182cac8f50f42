package domain

import (
	"fmt"
	"sync"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
)

// Customer groups accounts under an external short identifier for reporting.
// It holds references only and plays no part in balance invariants.
type Customer struct {
	mu       sync.RWMutex
	shortID  string
	name     string
	accounts []*Account
	audit    AuditFields
}

// NewCustomer creates a customer with no accounts.
func NewCustomer(shortID, name string) *Customer {
	return &Customer{shortID: shortID, name: name, audit: newAuditFields()}
}

func (c *Customer) ShortID() string { return c.shortID }
func (c *Customer) Name() string { return c.name }

// AddAccount attaches acc to the customer. Adding the same account twice is rejected.
func (c *Customer) AddAccount(acc *Account) error {
	if acc == nil {
		return fmt.Errorf("%w: account is required", apperrors.ErrValidation)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.accounts {
		if existing.Equal(acc) {
			return fmt.Errorf("%w: account %s already belongs to customer %s", apperrors.ErrDuplicate, acc.ID(), c.shortID)
		}
	}
	c.accounts = append(c.accounts, acc)
	c.audit.touch()
	return nil
}

// Accounts returns the attached accounts in the order they were added.
func (c *Customer) Accounts() []*Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Audit returns the customer's bookkeeping timestamps.
func (c *Customer) Audit() AuditFields {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.audit
}
