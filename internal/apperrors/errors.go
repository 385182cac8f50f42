package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount is returned when a deposit, withdrawal or transfer amount is not positive.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrInsufficientFunds is returned when an amount (plus any fee) exceeds the current balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSameAccount is returned when a transfer names the same account on both sides.
var ErrSameAccount = errors.New("source and target account must differ")

// AppError carries an HTTP-ish status code alongside a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the cause so errors.Is keeps working through an AppError.
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsRejection reports whether err is one of the expected ledger rejections
// (bad amount, insufficient funds, same-account transfer).
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrSameAccount)
}
