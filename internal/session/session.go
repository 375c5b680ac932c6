// Package session runs the interactive banking menu.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/minibank-dev/minibank/internal/config"
	"github.com/minibank-dev/minibank/internal/id"
	"github.com/minibank-dev/minibank/internal/ledger"
	"github.com/minibank-dev/minibank/internal/model"
	"github.com/minibank-dev/minibank/internal/reconcile"
	"github.com/minibank-dev/minibank/internal/registry"
	"github.com/minibank-dev/minibank/internal/statement"
)

const menu = `
================ MINIBANK ================
[d]  Deposit          [nu] New client
[s]  Withdraw         [nc] New account
[e]  Statement        [lc] List accounts
[a]  Audit            [q]  Quit
==========================================
=> `

// errQuit ends the loop when input runs out mid-prompt.
var errQuit = errors.New("quit")

// Session reads menu choices from in and writes prompts and results to out.
type Session struct {
	reg *registry.Registry
	cfg *config.Config
	in  *bufio.Reader
	out io.Writer
	log *slog.Logger
}

// New creates a Session over reg.
func New(reg *registry.Registry, cfg *config.Config, in io.Reader, out io.Writer, logger *slog.Logger) *Session {
	return &Session{
		reg: reg,
		cfg: cfg,
		in:  bufio.NewReader(in),
		out: out,
		log: logger,
	}
}

// Run loops until the operator quits or input ends.
func (s *Session) Run() error {
	for {
		choice, err := s.prompt(menu)
		if err != nil {
			return s.finish(err)
		}

		switch strings.ToLower(choice) {
		case "d":
			err = s.transact(model.KindDeposit)
		case "s":
			err = s.transact(model.KindWithdrawal)
		case "e":
			err = s.statement()
		case "nu":
			err = s.newClient()
		case "nc":
			err = s.newAccount()
		case "lc":
			s.listAccounts()
		case "a":
			s.audit()
		case "q":
			return nil
		case "":
		default:
			s.say("Invalid option, please choose one from the menu.")
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

func (s *Session) finish(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
		// last line without a trailing newline
	case errors.Is(err, io.EOF):
		return "", errQuit
	default:
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) say(format string, args ...any) {
	fmt.Fprintf(s.out, "\n"+format+"\n", args...)
}

func (s *Session) money(d decimal.Decimal) string {
	return s.cfg.Bank.Currency + " " + d.StringFixed(2)
}

// lookupClient asks for a tax ID and reports unknown clients.
func (s *Session) lookupClient(label string) (*ledger.Client, error) {
	taxID, err := s.prompt(label)
	if err != nil {
		return nil, err
	}
	c, ok := s.reg.FindClient(taxID)
	if !ok {
		s.say("Client not found.")
		return nil, nil
	}
	return c, nil
}

// selectAccount returns the principal account, or asks which account to use
// when the client has more than one.
func (s *Session) selectAccount(c *ledger.Client) (*ledger.Account, error) {
	principal, err := registry.PrincipalAccount(c)
	if err != nil {
		s.say("This client has no active accounts yet.")
		return nil, nil
	}
	if len(c.Accounts()) == 1 {
		return principal, nil
	}

	ref, err := s.prompt(fmt.Sprintf("Account (blank for %s): ", id.FormatAccountRef(principal.Branch(), principal.Number())))
	if err != nil {
		return nil, err
	}
	if ref == "" {
		return principal, nil
	}
	a, err := s.reg.FindAccount(ref)
	if err != nil || a.Owner() != c {
		s.say("Account not found for this client.")
		return nil, nil
	}
	return a, nil
}

func (s *Session) readAmount(label string) (decimal.Decimal, bool, error) {
	raw, err := s.prompt(label)
	if err != nil {
		return decimal.Zero, false, err
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		s.say("Invalid input! Enter a numeric amount.")
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

func (s *Session) transact(kind model.Kind) error {
	c, err := s.lookupClient("Client tax ID: ")
	if err != nil || c == nil {
		return err
	}

	label := "Deposit amount: " + s.cfg.Bank.Currency + " "
	if kind == model.KindWithdrawal {
		label = "Withdrawal amount: " + s.cfg.Bank.Currency + " "
	}
	amount, ok, err := s.readAmount(label)
	if err != nil || !ok {
		return err
	}

	a, err := s.selectAccount(c)
	if err != nil || a == nil {
		return err
	}

	var tx ledger.Transaction = ledger.NewDeposit(amount)
	if kind == model.KindWithdrawal {
		tx = ledger.NewWithdrawal(amount)
	}

	ref := id.FormatAccountRef(a.Branch(), a.Number())
	if err := c.PerformTransaction(a, tx); err != nil {
		s.log.Debug("transaction rejected", "account", ref, "kind", tx.Kind(), "amount", amount.StringFixed(2), "error", err)
		s.say("%s", s.rejection(a, tx, err))
		return nil
	}
	s.log.Debug("transaction applied", "account", ref, "kind", tx.Kind(), "amount", amount.StringFixed(2), "balance", a.Balance().StringFixed(2))
	s.say("%s of %s processed!", tx.Kind().Label(), s.money(amount))
	return nil
}

// rejection maps a domain error to the message shown to the operator.
func (s *Session) rejection(a *ledger.Account, tx ledger.Transaction, err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount) && tx.Kind() == model.KindDeposit:
		return "Error: deposit amount must be positive."
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "Error: invalid withdrawal amount."
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "Error: insufficient balance for this operation."
	case errors.Is(err, ledger.ErrLimitExceeded):
		if p, ok := a.Policy().(*ledger.CheckingPolicy); ok {
			return fmt.Sprintf("Error: the amount exceeds your limit of %s.", s.money(p.Limits().Ceiling))
		}
		return "Error: the amount exceeds your withdrawal limit."
	case errors.Is(err, ledger.ErrQuotaExceeded):
		return "Error: withdrawal quota reached."
	default:
		return "Error: " + err.Error()
	}
}

func (s *Session) statement() error {
	c, err := s.lookupClient("Client tax ID: ")
	if err != nil || c == nil {
		return err
	}
	a, err := s.selectAccount(c)
	if err != nil || a == nil {
		return err
	}

	fmt.Fprintln(s.out)
	if s.cfg.Statement.Format == "csv" {
		if err := statement.WriteCSV(s.out, a.Events()); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "BALANCE: %s\n", s.money(a.Balance()))
		return nil
	}
	return statement.Render(s.out, statement.FromAccount(a), s.cfg.StatementOptions())
}

func (s *Session) newClient() error {
	raw, err := s.prompt("Tax ID (numbers only): ")
	if err != nil {
		return err
	}
	taxID, err := id.NormalizeTaxID(raw)
	if err != nil {
		s.say("Error: tax ID must contain only digits.")
		return nil
	}
	if _, ok := s.reg.FindClient(taxID); ok {
		s.say("Error: tax ID already registered.")
		return nil
	}

	profile := model.Profile{TaxID: taxID}
	if profile.Name, err = s.prompt("Name: "); err != nil {
		return err
	}
	if profile.BirthDate, err = s.prompt("Birth date (dd-mm-yyyy): "); err != nil {
		return err
	}
	if profile.Address, err = s.prompt("Address: "); err != nil {
		return err
	}

	if _, err := s.reg.RegisterClient(profile); err != nil {
		s.say("Error: %v", err)
		return nil
	}
	s.log.Info("client registered", "tax_id", taxID)
	s.say("Client registered!")
	return nil
}

func (s *Session) newAccount() error {
	taxID, err := s.prompt("Holder tax ID: ")
	if err != nil {
		return err
	}
	a, err := s.reg.OpenAccount(taxID)
	if err != nil {
		s.say("Client not found.")
		return nil
	}
	ref := id.FormatAccountRef(a.Branch(), a.Number())
	s.log.Info("account opened", "account", ref, "tax_id", a.Owner().TaxID())
	s.say("Account %s opened!", ref)
	return nil
}

func (s *Session) listAccounts() {
	s.say("--- ACCOUNTS ---")
	accts := s.reg.Accounts()
	if len(accts) == 0 {
		fmt.Fprintln(s.out, "No accounts opened.")
		return
	}
	for _, a := range accts {
		fmt.Fprintf(s.out, "HOLDER: %s | BRANCH: %s | ACCOUNT: %d | %s\n", a.Owner().Name(), a.Branch(), a.Number(), a.Type())
	}
}

func (s *Session) audit() {
	accts := s.reg.Accounts()
	errs := reconcile.CheckAll(accts)
	if len(errs) == 0 {
		s.say("All %d accounts reconcile.", len(accts))
		return
	}
	s.log.Warn("reconciliation failed", "violations", len(errs))
	s.say("%d problem(s) found:", len(errs))
	for _, e := range errs {
		fmt.Fprintln(s.out, e.Error())
	}
}
