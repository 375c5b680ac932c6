package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minibank-dev/minibank/internal/model"
)

// WithdrawalPolicy is consulted before the balance check of every withdrawal.
// A non-nil error rejects the withdrawal without touching the balance.
type WithdrawalPolicy interface {
	Name() string
	Allow(amount decimal.Decimal, history *History, now time.Time) error
}

// BalancePolicy adds no rules; only the balance check applies.
type BalancePolicy struct{}

// Name returns "basic".
func (BalancePolicy) Name() string { return "basic" }

// Allow always permits the withdrawal.
func (BalancePolicy) Allow(decimal.Decimal, *History, time.Time) error { return nil }

// CheckingLimits configures a checking account.
type CheckingLimits struct {
	Ceiling decimal.Decimal // max amount per withdrawal
	Quota   int             // max number of withdrawals

	// Window restricts the quota to withdrawals recorded within this trailing
	// duration. Zero counts every withdrawal the account ever made.
	Window time.Duration
}

// DefaultCheckingLimits returns a 1000.00 ceiling and a lifetime quota of 5.
func DefaultCheckingLimits() CheckingLimits {
	return CheckingLimits{
		Ceiling: decimal.NewFromInt(1000),
		Quota:   5,
	}
}

// CheckingPolicy enforces a per-withdrawal ceiling and a withdrawal count quota.
type CheckingPolicy struct {
	limits CheckingLimits
}

// NewCheckingPolicy creates a CheckingPolicy.
func NewCheckingPolicy(limits CheckingLimits) *CheckingPolicy {
	return &CheckingPolicy{limits: limits}
}

// Name returns "checking".
func (p *CheckingPolicy) Name() string { return "checking" }

// Limits returns the configured limits.
func (p *CheckingPolicy) Limits() CheckingLimits { return p.limits }

// Allow checks the ceiling first, then the quota.
func (p *CheckingPolicy) Allow(amount decimal.Decimal, history *History, now time.Time) error {
	if amount.GreaterThan(p.limits.Ceiling) {
		return fmt.Errorf("%w: %s is above the %s ceiling", ErrLimitExceeded, amount.StringFixed(2), p.limits.Ceiling.StringFixed(2))
	}

	var since time.Time
	if p.limits.Window > 0 {
		since = now.Add(-p.limits.Window)
	}
	if used := history.Count(model.KindWithdrawal, since); used >= p.limits.Quota {
		return fmt.Errorf("%w: %d of %d withdrawals used", ErrQuotaExceeded, used, p.limits.Quota)
	}
	return nil
}
