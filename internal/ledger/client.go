package ledger

import "github.com/minibank-dev/minibank/internal/model"

// Client owns an ordered list of accounts.
type Client struct {
	profile  model.Profile
	accounts []*Account
}

// NewClient creates a client with no accounts.
func NewClient(profile model.Profile) *Client {
	return &Client{profile: profile}
}

// Profile returns the registration data.
func (c *Client) Profile() model.Profile { return c.profile }

// TaxID returns the client's unique identifier.
func (c *Client) TaxID() string { return c.profile.TaxID }

// Name returns the client's name.
func (c *Client) Name() string { return c.profile.Name }

// RegisterAccount appends a to the client's accounts. The first registered
// account is the principal account.
func (c *Client) RegisterAccount(a *Account) {
	c.accounts = append(c.accounts, a)
}

// Accounts returns the client's accounts in the order they were registered.
func (c *Client) Accounts() []*Account {
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// PerformTransaction applies tx to a.
func (c *Client) PerformTransaction(a *Account, tx Transaction) error {
	return tx.Apply(a)
}
