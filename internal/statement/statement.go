// Package statement renders account statements.
package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/minibank-dev/minibank/internal/id"
	"github.com/minibank-dev/minibank/internal/ledger"
	"github.com/minibank-dev/minibank/internal/model"
)

const (
	width = 30
	title = " BANK STATEMENT "

	// DefaultTimestampFormat is dd/mm/yyyy hh:mm:ss.
	DefaultTimestampFormat = "02/01/2006 15:04:05"
	// DefaultCurrency is the symbol printed before amounts.
	DefaultCurrency = "R$"
)

// Statement is a point-in-time view of one account.
type Statement struct {
	Account string // reference, e.g. "0001-000001"
	Type    string
	Holder  string
	Events  []model.Event
	Balance decimal.Decimal
}

// Options controls text rendering. Zero values fall back to the defaults.
type Options struct {
	TimestampFormat string
	Currency        string
}

// FromAccount snapshots a.
func FromAccount(a *ledger.Account) Statement {
	st := Statement{
		Account: id.FormatAccountRef(a.Branch(), a.Number()),
		Type:    a.Type(),
		Events:  a.Events(),
		Balance: a.Balance(),
	}
	if owner := a.Owner(); owner != nil {
		st.Holder = owner.Name()
	}
	return st
}

// Render writes st as a fixed-width text report.
func Render(w io.Writer, st Statement, opts Options) error {
	if opts.TimestampFormat == "" {
		opts.TimestampFormat = DefaultTimestampFormat
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}

	rule := strings.Repeat("=", width)
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, center(title, width))
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Account: %s (%s)\n", st.Account, st.Type)
	if st.Holder != "" {
		fmt.Fprintf(&b, "Holder:  %s\n", st.Holder)
	}

	if len(st.Events) == 0 {
		fmt.Fprintln(&b, "No transactions recorded.")
	}
	for _, ev := range st.Events {
		fmt.Fprintf(&b, "%s - %s: %s %8s\n", ev.Time.Format(opts.TimestampFormat), ev.Kind.Label(), opts.Currency, ev.Amount.StringFixed(2))
	}

	fmt.Fprintln(&b, strings.Repeat("-", width))
	fmt.Fprintf(&b, "BALANCE: %s %s\n", opts.Currency, st.Balance.StringFixed(2))
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}

func center(s string, n int) string {
	if len(s) >= n {
		return s
	}
	left := (n - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", n-len(s)-left)
}
