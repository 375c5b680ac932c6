// Package registry keeps the session's clients and accounts in memory.
package registry

import (
	"errors"
	"fmt"

	"github.com/minibank-dev/minibank/internal/id"
	"github.com/minibank-dev/minibank/internal/ledger"
	"github.com/minibank-dev/minibank/internal/model"
)

var (
	// ErrClientNotFound is returned when no client has the given tax ID.
	ErrClientNotFound = errors.New("client not found")
	// ErrDuplicateClient is returned when registering a tax ID twice.
	ErrDuplicateClient = errors.New("client already registered")
	// ErrNoAccount is returned when a client has not opened any account.
	ErrNoAccount = errors.New("client has no account")
	// ErrAccountNotFound is returned when no account matches a reference.
	ErrAccountNotFound = errors.New("account not found")
)

// Registry provides in-memory lookup over clients and accounts.
type Registry struct {
	branch   string
	limits   ledger.CheckingLimits
	opts     []ledger.Option
	clients  []*ledger.Client
	byTaxID  map[string]*ledger.Client
	accounts []*ledger.Account
}

// New creates an empty Registry. Accounts are opened under branch as
// checking accounts with limits; opts are passed to every new account.
func New(branch string, limits ledger.CheckingLimits, opts ...ledger.Option) *Registry {
	return &Registry{
		branch:  branch,
		limits:  limits,
		opts:    opts,
		byTaxID: make(map[string]*ledger.Client),
	}
}

// RegisterClient adds a client. The tax ID is normalized before the
// duplicate check, so "123.456.789-00" and "12345678900" collide.
func (r *Registry) RegisterClient(profile model.Profile) (*ledger.Client, error) {
	taxID, err := id.NormalizeTaxID(profile.TaxID)
	if err != nil {
		return nil, err
	}
	if _, ok := r.byTaxID[taxID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateClient, taxID)
	}

	profile.TaxID = taxID
	c := ledger.NewClient(profile)
	r.clients = append(r.clients, c)
	r.byTaxID[taxID] = c
	return c, nil
}

// FindClient returns the client with taxID.
func (r *Registry) FindClient(taxID string) (*ledger.Client, bool) {
	norm, err := id.NormalizeTaxID(taxID)
	if err != nil {
		return nil, false
	}
	c, ok := r.byTaxID[norm]
	return c, ok
}

// OpenAccount opens the next checking account for the client with taxID.
func (r *Registry) OpenAccount(taxID string) (*ledger.Account, error) {
	c, ok := r.FindClient(taxID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, taxID)
	}

	opts := append([]ledger.Option{ledger.WithBranch(r.branch)}, r.opts...)
	a := ledger.NewCheckingAccount(len(r.accounts)+1, c, r.limits, opts...)
	r.accounts = append(r.accounts, a)
	c.RegisterAccount(a)
	return a, nil
}

// FindAccount returns the account with the given reference, e.g. "0001-000003".
func (r *Registry) FindAccount(ref string) (*ledger.Account, error) {
	branch, number, err := id.ParseAccountRef(ref)
	if err != nil {
		return nil, err
	}
	if branch != r.branch || number > len(r.accounts) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, ref)
	}
	return r.accounts[number-1], nil
}

// Clients returns all clients in registration order.
func (r *Registry) Clients() []*ledger.Client {
	out := make([]*ledger.Client, len(r.clients))
	copy(out, r.clients)
	return out
}

// Accounts returns all accounts in the order they were opened.
func (r *Registry) Accounts() []*ledger.Account {
	out := make([]*ledger.Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// PrincipalAccount returns the first account the client opened.
func PrincipalAccount(c *ledger.Client) (*ledger.Account, error) {
	accts := c.Accounts()
	if len(accts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAccount, c.TaxID())
	}
	return accts[0], nil
}
