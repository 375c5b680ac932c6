package ledger

import "errors"

// Business-rule rejections. Every failed operation leaves the account untouched.
var (
	// ErrInvalidAmount is returned when a positive amount is required.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrLimitExceeded is returned when a withdrawal exceeds the per-transaction ceiling.
	ErrLimitExceeded = errors.New("withdrawal limit exceeded")
	// ErrQuotaExceeded is returned when the withdrawal count quota is used up.
	ErrQuotaExceeded = errors.New("withdrawal quota exceeded")
)
