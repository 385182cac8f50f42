package memory

import (
	portsrepo "github.com/SscSPs/bank_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the in-process registries.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newAccountRepository(),
		CustomerRepo: newCustomerRepository(),
	}
}
