package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/minibank-dev/minibank/internal/model"
)

// Transaction is a single unit of work against an account.
// The account decides whether the amount is legal; Apply records an event
// only when the account accepted it.
type Transaction interface {
	Kind() model.Kind
	Amount() decimal.Decimal
	Apply(a *Account) error
}

// Deposit credits an account.
type Deposit struct {
	amount decimal.Decimal
}

// NewDeposit creates a Deposit for amount.
func NewDeposit(amount decimal.Decimal) Deposit {
	return Deposit{amount: amount}
}

// Kind returns model.KindDeposit.
func (d Deposit) Kind() model.Kind { return model.KindDeposit }

// Amount returns the requested amount.
func (d Deposit) Amount() decimal.Decimal { return d.amount }

// Apply deposits into a and records the event on success.
func (d Deposit) Apply(a *Account) error {
	return a.transact(d, a.deposit)
}

// Withdrawal debits an account, subject to its withdrawal policy.
type Withdrawal struct {
	amount decimal.Decimal
}

// NewWithdrawal creates a Withdrawal for amount.
func NewWithdrawal(amount decimal.Decimal) Withdrawal {
	return Withdrawal{amount: amount}
}

// Kind returns model.KindWithdrawal.
func (w Withdrawal) Kind() model.Kind { return model.KindWithdrawal }

// Amount returns the requested amount.
func (w Withdrawal) Amount() decimal.Decimal { return w.amount }

// Apply withdraws from a and records the event on success.
func (w Withdrawal) Apply(a *Account) error {
	return a.transact(w, a.withdraw)
}
