package domain

import (
	"fmt"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

const (
	feeAppliedSuffix = "(fee applied)"
	feeNote          = "Withdrawal fee"
	interestNote     = "Interest Applied"
)

var hundred = decimal.NewFromInt(100)

// accountPolicy is the kind-specific behaviour of an account.
// Both functions run with the account lock held.
type accountPolicy struct {
	withdraw      func(a *Account, amount decimal.Decimal, date, note string) error
	applyInterest func(a *Account, date string) (decimal.Decimal, bool)
}

var policies = map[AccountKind]accountPolicy{
	Standard: {withdraw: standardWithdraw, applyInterest: noInterest},
	Savings:  {withdraw: savingsWithdraw, applyInterest: savingsInterest},
}

func policyFor(kind AccountKind) accountPolicy {
	p, ok := policies[kind]
	if !ok {
		// Kinds are only set by the constructors.
		panic(fmt.Sprintf("domain: no policy for account kind %q", kind))
	}
	return p
}

func standardWithdraw(a *Account, amount decimal.Decimal, date, note string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal of %s", apperrors.ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("%w: withdrawal of %s exceeds balance %s", apperrors.ErrInsufficientFunds, amount, a.balance)
	}
	a.rawDebit(amount)
	a.record(Withdrawal, amount, date, note)
	return nil
}

func noInterest(*Account, string) (decimal.Decimal, bool) {
	return decimal.Zero, false
}

// savingsWithdraw charges the fee once the quota is used up. Principal and fee
// are checked against the balance together: if the sum does not fit, nothing
// is deducted.
func savingsWithdraw(a *Account, amount decimal.Decimal, date, note string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal of %s", apperrors.ErrInvalidAmount, amount)
	}
	s := a.savings
	total := amount
	feeApplied := s.withdrawCount >= s.terms.WithdrawLimitPerMonth
	if feeApplied {
		total = total.Add(s.terms.WithdrawalFee)
	}
	if total.GreaterThan(a.balance) {
		return fmt.Errorf("%w: withdrawal of %s (total %s) exceeds balance %s",
			apperrors.ErrInsufficientFunds, amount, total, a.balance)
	}

	a.rawDebit(total)
	if feeApplied {
		a.record(Withdrawal, amount, date, joinNote(note, feeAppliedSuffix))
		a.record(Withdrawal, s.terms.WithdrawalFee, date, feeNote)
	} else {
		a.record(Withdrawal, amount, date, note)
	}
	s.withdrawCount++
	return nil
}

// savingsInterest always appends a record, even when the rate or balance is zero.
func savingsInterest(a *Account, date string) (decimal.Decimal, bool) {
	interest := a.balance.Mul(a.savings.terms.InterestRatePercent).Div(hundred)
	a.rawCredit(interest)
	a.record(Interest, interest, date, interestNote)
	return interest, true
}
