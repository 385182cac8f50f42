package domain

import (
	"fmt"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Transfer moves amount from source to target as one unit.
//
// Both accounts are locked in ascending identifier order so that opposing
// transfers between the same pair cannot deadlock. The balances are moved
// with rawDebit/rawCredit: a transfer never consumes a withdrawal quota
// and never pays a withdrawal fee.
//
// A transfer from an account to itself is rejected with ErrSameAccount
// rather than recorded as a zero-sum pair of entries, since it would need
// the same lock twice.
func Transfer(source, target *Account, amount decimal.Decimal, date, note string) error {
	_, _, err := TransferSnapshots(source, target, amount, date, note)
	return err
}

// TransferSnapshots is Transfer returning both accounts' state as of the
// transfer, captured before either lock is released.
func TransferSnapshots(source, target *Account, amount decimal.Decimal, date, note string) (AccountSnapshot, AccountSnapshot, error) {
	if source == nil || target == nil {
		return AccountSnapshot{}, AccountSnapshot{}, fmt.Errorf("%w: transfer requires two accounts", apperrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return AccountSnapshot{}, AccountSnapshot{}, fmt.Errorf("%w: transfer of %s", apperrors.ErrInvalidAmount, amount)
	}
	if source.id == target.id {
		return AccountSnapshot{}, AccountSnapshot{}, fmt.Errorf("%w: %s", apperrors.ErrSameAccount, source.id)
	}

	unlock := lockPair(source, target)
	defer unlock()

	if amount.GreaterThan(source.balance) {
		return AccountSnapshot{}, AccountSnapshot{}, fmt.Errorf("%w: transfer of %s exceeds balance %s of %s",
			apperrors.ErrInsufficientFunds, amount, source.balance, source.id)
	}

	source.rawDebit(amount)
	source.record(TransferOut, amount, date, joinNote(note, "(to "+target.id+")"))
	target.rawCredit(amount)
	target.record(TransferIn, amount, date, joinNote(note, "(from "+source.id+")"))
	return source.snapshotLocked(), target.snapshotLocked(), nil
}

// lockPair locks two distinct accounts in identifier order and returns the unlock func.
func lockPair(a, b *Account) func() {
	first, second := a, b
	if b.id < a.id {
		first, second = b, a
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
