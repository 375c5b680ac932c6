// Package reconcile re-derives account balances from their histories.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/minibank-dev/minibank/internal/id"
	"github.com/minibank-dev/minibank/internal/ledger"
	"github.com/minibank-dev/minibank/internal/model"
)

// Rules checked by Check.
const (
	RulePositiveAmount = 1
	RuleNonNegative    = 2
	RuleBalance        = 3
	RuleOrdering       = 4
)

// Violation describes a single broken rule.
type Violation struct {
	Rule        int
	Account     string // account reference
	Description string
}

func (v Violation) Error() string {
	return fmt.Sprintf("rule %d [%s]: %s", v.Rule, v.Account, v.Description)
}

// Check replays the account's history and compares it to its balance.
func Check(a *ledger.Account) []Violation {
	ref := id.FormatAccountRef(a.Branch(), a.Number())
	events := a.Events()
	balance := a.Balance()

	var errs []Violation
	running := decimal.Zero
	for i, ev := range events {
		// Rule 1: recorded amounts are positive.
		if !ev.Amount.IsPositive() {
			errs = append(errs, Violation{
				Rule:        RulePositiveAmount,
				Account:     ref,
				Description: fmt.Sprintf("event %d has non-positive amount %s", i+1, ev.Amount.StringFixed(2)),
			})
		}

		switch ev.Kind {
		case model.KindDeposit:
			running = running.Add(ev.Amount)
		case model.KindWithdrawal:
			running = running.Sub(ev.Amount)
		}

		// Rule 2: the running balance never dips below zero.
		if running.IsNegative() {
			errs = append(errs, Violation{
				Rule:        RuleNonNegative,
				Account:     ref,
				Description: fmt.Sprintf("balance %s after event %d", running.StringFixed(2), i+1),
			})
		}

		// Rule 4: events are recorded in time order.
		if i > 0 && ev.Time.Before(events[i-1].Time) {
			errs = append(errs, Violation{
				Rule:        RuleOrdering,
				Account:     ref,
				Description: fmt.Sprintf("event %d recorded before event %d", i+1, i),
			})
		}
	}

	// Rule 3: the replayed history matches the balance.
	if !running.Equal(balance) {
		errs = append(errs, Violation{
			Rule:        RuleBalance,
			Account:     ref,
			Description: fmt.Sprintf("history sums to %s, balance is %s", running.StringFixed(2), balance.StringFixed(2)),
		})
	}

	return errs
}

// CheckAll checks every account, in order.
func CheckAll(accounts []*ledger.Account) []Violation {
	var errs []Violation
	for _, a := range accounts {
		errs = append(errs, Check(a)...)
	}
	return errs
}
