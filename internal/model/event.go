package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind tags a transaction or history event.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// Label returns the display name used on statements.
func (k Kind) Label() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindWithdrawal:
		return "Withdrawal"
	default:
		return string(k)
	}
}

// Event is one successfully applied transaction in an account's history.
type Event struct {
	ID     uuid.UUID
	Kind   Kind
	Amount decimal.Decimal
	Time   time.Time
}
