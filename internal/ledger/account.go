// Package ledger holds the account and transaction domain model: balances,
// withdrawal policies, and the per-account event history.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minibank-dev/minibank/internal/model"
)

// DefaultBranch is the branch code every account is opened under.
const DefaultBranch = "0001"

// Account owns a balance and its History. All operations either commit
// fully or leave the account unchanged.
type Account struct {
	mu      sync.Mutex
	number  int
	branch  string
	owner   *Client // back-reference, not ownership
	balance decimal.Decimal
	history History
	policy  WithdrawalPolicy
	now     func() time.Time
}

// Option configures an Account.
type Option func(*Account)

// WithPolicy sets the withdrawal policy. The default is BalancePolicy.
func WithPolicy(p WithdrawalPolicy) Option {
	return func(a *Account) { a.policy = p }
}

// WithBranch overrides DefaultBranch.
func WithBranch(branch string) Option {
	return func(a *Account) { a.branch = branch }
}

// WithClock sets the clock used to timestamp events.
func WithClock(now func() time.Time) Option {
	return func(a *Account) { a.now = now }
}

// NewAccount creates an account with a zero balance. It does not register
// the account with owner; see Client.RegisterAccount.
func NewAccount(number int, owner *Client, opts ...Option) *Account {
	a := &Account{
		number:  number,
		branch:  DefaultBranch,
		owner:   owner,
		balance: decimal.Zero,
		policy:  BalancePolicy{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewCheckingAccount creates an account governed by a CheckingPolicy.
func NewCheckingAccount(number int, owner *Client, limits CheckingLimits, opts ...Option) *Account {
	opts = append([]Option{WithPolicy(NewCheckingPolicy(limits))}, opts...)
	return NewAccount(number, owner, opts...)
}

// Number returns the account number.
func (a *Account) Number() int { return a.number }

// Branch returns the branch code.
func (a *Account) Branch() string { return a.branch }

// Owner returns the client the account belongs to.
func (a *Account) Owner() *Client { return a.owner }

// Type returns the name of the withdrawal policy, e.g. "checking".
func (a *Account) Type() string { return a.policy.Name() }

// Policy returns the withdrawal policy.
func (a *Account) Policy() WithdrawalPolicy { return a.policy }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Events returns a copy of the account's history.
func (a *Account) Events() []model.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Events()
}

// Deposit credits amount without recording an event. Use a Transaction to
// keep the history in step with the balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deposit(amount)
}

// Withdraw debits amount without recording an event.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdraw(amount)
}

// transact runs op and records tx if op succeeds, under one lock.
func (a *Account) transact(tx Transaction, op func(decimal.Decimal) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := op(tx.Amount()); err != nil {
		return err
	}
	a.history.record(tx, a.now())
	return nil
}

func (a *Account) deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit of %s", ErrInvalidAmount, amount.StringFixed(2))
	}
	a.balance = a.balance.Add(amount)
	return nil
}

func (a *Account) withdraw(amount decimal.Decimal) error {
	if err := a.policy.Allow(amount, &a.history, a.now()); err != nil {
		return err
	}
	return a.debit(amount)
}

// debit checks sufficiency before positivity. Any non-positive amount falls
// through to ErrInvalidAmount, so a zero withdrawal never succeeds.
func (a *Account) debit(amount decimal.Decimal) error {
	switch {
	case amount.GreaterThan(a.balance):
		return fmt.Errorf("%w: %s requested, %s available", ErrInsufficientFunds, amount.StringFixed(2), a.balance.StringFixed(2))
	case !amount.IsPositive():
		return fmt.Errorf("%w: withdrawal of %s", ErrInvalidAmount, amount.StringFixed(2))
	default:
		a.balance = a.balance.Sub(amount)
		return nil
	}
}
