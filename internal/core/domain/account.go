package domain

import (
	"fmt"
	"strings"
	"sync"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountKind selects the withdrawal and interest behaviour of an account.
type AccountKind string

const (
	Standard AccountKind = "STANDARD"
	Savings  AccountKind = "SAVINGS"
)

// ParseAccountKind converts user input (case-insensitive) into an AccountKind.
// An empty string means Standard.
func ParseAccountKind(s string) (AccountKind, error) {
	switch AccountKind(strings.ToUpper(strings.TrimSpace(s))) {
	case "", Standard:
		return Standard, nil
	case Savings:
		return Savings, nil
	default:
		return "", fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, s)
	}
}

// SavingsTerms are the configured parameters of a savings account.
type SavingsTerms struct {
	InterestRatePercent   decimal.Decimal `json:"interestRatePercent"`
	WithdrawLimitPerMonth int             `json:"withdrawLimitPerMonth"`
	WithdrawalFee         decimal.Decimal `json:"withdrawalFee"`
}

// Validate checks that no term is negative.
func (t SavingsTerms) Validate() error {
	if t.InterestRatePercent.IsNegative() {
		return fmt.Errorf("%w: interest rate must not be negative", apperrors.ErrValidation)
	}
	if t.WithdrawLimitPerMonth < 0 {
		return fmt.Errorf("%w: withdraw limit must not be negative", apperrors.ErrValidation)
	}
	if t.WithdrawalFee.IsNegative() {
		return fmt.Errorf("%w: withdrawal fee must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// savingsState is the kind-specific part of a savings account.
type savingsState struct {
	terms         SavingsTerms
	withdrawCount int
}

// Account holds a balance and its append-only ledger.
//
// All mutation goes through methods that hold mu for the full
// balance change plus record append, so readers never observe one
// without the other.
type Account struct {
	mu sync.Mutex

	id              string
	ownerName       string
	kind            AccountKind
	balance         decimal.Decimal
	startingBalance decimal.Decimal
	history         []Transaction
	savings         *savingsState // nil unless kind == Savings
	audit           AuditFields
}

// NewAccount creates a standard account. The opening balance is not validated.
func NewAccount(id, ownerName string, openingBalance decimal.Decimal) *Account {
	return &Account{
		id:              id,
		ownerName:       ownerName,
		kind:            Standard,
		balance:         openingBalance,
		startingBalance: openingBalance,
		audit:           newAuditFields(),
	}
}

// NewSavingsAccount creates a savings account with a fresh withdrawal quota.
func NewSavingsAccount(id, ownerName string, openingBalance decimal.Decimal, terms SavingsTerms) *Account {
	a := NewAccount(id, ownerName, openingBalance)
	a.kind = Savings
	a.savings = &savingsState{terms: terms}
	return a
}

func (a *Account) ID() string { return a.id }
func (a *Account) OwnerName() string { return a.ownerName }
func (a *Account) Kind() AccountKind { return a.kind }
func (a *Account) StartingBalance() decimal.Decimal { return a.startingBalance }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// History returns a copy of the ledger in append order.
func (a *Account) History() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// WithdrawCount returns the withdrawals made in the current period.
// The second result is false for accounts without a quota.
func (a *Account) WithdrawCount() (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.savings == nil {
		return 0, false
	}
	return a.savings.withdrawCount, true
}

// Equal compares accounts by identifier only.
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.id == other.id
}

// Deposit credits amount and appends a Deposit record.
func (a *Account) Deposit(amount decimal.Decimal, date, note string) error {
	_, err := a.DepositSnapshot(amount, date, note)
	return err
}

// DepositSnapshot is Deposit returning the account state it produced.
func (a *Account) DepositSnapshot(amount decimal.Decimal, date, note string) (AccountSnapshot, error) {
	if !amount.IsPositive() {
		return AccountSnapshot{}, fmt.Errorf("%w: deposit of %s", apperrors.ErrInvalidAmount, amount)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rawCredit(amount)
	a.record(Deposit, amount, date, note)
	return a.snapshotLocked(), nil
}

// Withdraw debits amount according to the account kind's policy.
// A rejected withdrawal leaves the account untouched.
func (a *Account) Withdraw(amount decimal.Decimal, date, note string) error {
	_, err := a.WithdrawSnapshot(amount, date, note)
	return err
}

// WithdrawSnapshot is Withdraw returning the account state it produced.
func (a *Account) WithdrawSnapshot(amount decimal.Decimal, date, note string) (AccountSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := policyFor(a.kind).withdraw(a, amount, date, note); err != nil {
		return AccountSnapshot{}, err
	}
	return a.snapshotLocked(), nil
}

// ApplyInterest accrues interest according to the account kind's policy.
// It reports the credited amount and whether a record was appended.
func (a *Account) ApplyInterest(date string) (decimal.Decimal, bool) {
	_, amount, applied := a.ApplyInterestSnapshot(date)
	return amount, applied
}

// ApplyInterestSnapshot is ApplyInterest also returning the resulting account state.
func (a *Account) ApplyInterestSnapshot(date string) (AccountSnapshot, decimal.Decimal, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	amount, applied := policyFor(a.kind).applyInterest(a, date)
	return a.snapshotLocked(), amount, applied
}

// ResetWithdrawCount starts a new accounting period for the withdrawal quota.
// It returns false when the account has no quota.
func (a *Account) ResetWithdrawCount() bool {
	_, ok := a.ResetWithdrawCountSnapshot()
	return ok
}

// ResetWithdrawCountSnapshot is ResetWithdrawCount also returning the resulting account state.
func (a *Account) ResetWithdrawCountSnapshot() (AccountSnapshot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.savings == nil {
		return AccountSnapshot{}, false
	}
	a.savings.withdrawCount = 0
	a.audit.touch()
	return a.snapshotLocked(), true
}

// TransferTo moves amount from a to target. See Transfer.
func (a *Account) TransferTo(target *Account, amount decimal.Decimal, date, note string) error {
	return Transfer(a, target, amount, date, note)
}

// rawCredit and rawDebit change the balance without any policy checks.
// Callers must hold mu and must record the change before releasing it.
func (a *Account) rawCredit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}

func (a *Account) rawDebit(amount decimal.Decimal) {
	a.balance = a.balance.Sub(amount)
}

// record appends a ledger entry stamped with the current balance.
func (a *Account) record(kind TransactionKind, amount decimal.Decimal, date, note string) {
	a.history = append(a.history, Transaction{
		Amount:       amount,
		Kind:         kind,
		Date:         date,
		Note:         note,
		BalanceAfter: a.balance,
	})
	a.audit.touch()
}

// AccountSnapshot is a consistent read-only view of an account.
type AccountSnapshot struct {
	AccountID       string           `json:"accountID"`
	OwnerName       string           `json:"ownerName"`
	Kind            AccountKind      `json:"kind"`
	StartingBalance decimal.Decimal  `json:"startingBalance"`
	Balance         decimal.Decimal  `json:"balance"`
	History         []Transaction    `json:"history"`
	Savings         *SavingsSnapshot `json:"savings,omitempty"`
	AuditFields
}

// SavingsSnapshot exposes the quota state of a savings account.
type SavingsSnapshot struct {
	SavingsTerms
	WithdrawCountThisMonth int `json:"withdrawCountThisMonth"`
}

// Snapshot captures balance, history and quota under one lock.
func (a *Account) Snapshot() AccountSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// snapshotLocked copies the account state. Callers must hold mu.
func (a *Account) snapshotLocked() AccountSnapshot {
	snap := AccountSnapshot{
		AccountID:       a.id,
		OwnerName:       a.ownerName,
		Kind:            a.kind,
		StartingBalance: a.startingBalance,
		Balance:         a.balance,
		History:         make([]Transaction, len(a.history)),
		AuditFields:     a.audit,
	}
	copy(snap.History, a.history)
	if a.savings != nil {
		snap.Savings = &SavingsSnapshot{
			SavingsTerms:           a.savings.terms,
			WithdrawCountThisMonth: a.savings.withdrawCount,
		}
	}
	return snap
}

// joinNote appends suffix to note, separated by a space when note is non-empty.
func joinNote(note, suffix string) string {
	if note == "" {
		return suffix
	}
	return note + " " + suffix
}
