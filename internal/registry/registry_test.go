package registry

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minibank-dev/minibank/internal/id"
	"github.com/minibank-dev/minibank/internal/ledger"
	"github.com/minibank-dev/minibank/internal/model"
)

func newTestRegistry() *Registry {
	return New(ledger.DefaultBranch, ledger.DefaultCheckingLimits())
}

func TestRegisterClient(t *testing.T) {
	r := newTestRegistry()

	c, err := r.RegisterClient(model.Profile{TaxID: "123.456.789-00", Name: "Ana", BirthDate: "01-01-1990", Address: "Rua B, 10"})
	require.NoError(t, err)
	assert.Equal(t, "12345678900", c.TaxID())
	assert.Equal(t, "Ana", c.Name())

	got, ok := r.FindClient("12345678900")
	require.True(t, ok)
	assert.Same(t, c, got)

	got, ok = r.FindClient("123.456.789-00")
	require.True(t, ok)
	assert.Same(t, c, got)

	_, ok = r.FindClient("999")
	assert.False(t, ok)
	_, ok = r.FindClient("not a tax id")
	assert.False(t, ok)
}

func TestRegisterClient_Duplicate(t *testing.T) {
	r := newTestRegistry()
	_, err := r.RegisterClient(model.Profile{TaxID: "12345678900", Name: "Ana"})
	require.NoError(t, err)

	_, err = r.RegisterClient(model.Profile{TaxID: "123.456.789-00", Name: "Other"})
	assert.ErrorIs(t, err, ErrDuplicateClient)
	assert.Len(t, r.Clients(), 1)
}

func TestRegisterClient_InvalidTaxID(t *testing.T) {
	r := newTestRegistry()
	_, err := r.RegisterClient(model.Profile{TaxID: "abc"})
	assert.ErrorIs(t, err, id.ErrInvalidTaxID)
	assert.Empty(t, r.Clients())
}

func TestOpenAccount_SequentialNumbers(t *testing.T) {
	r := newTestRegistry()
	ana, err := r.RegisterClient(model.Profile{TaxID: "111", Name: "Ana"})
	require.NoError(t, err)
	bruno, err := r.RegisterClient(model.Profile{TaxID: "222", Name: "Bruno"})
	require.NoError(t, err)

	a1, err := r.OpenAccount("111")
	require.NoError(t, err)
	b1, err := r.OpenAccount("222")
	require.NoError(t, err)
	a2, err := r.OpenAccount("111")
	require.NoError(t, err)

	assert.Equal(t, 1, a1.Number())
	assert.Equal(t, 2, b1.Number())
	assert.Equal(t, 3, a2.Number())

	assert.Same(t, ana, a1.Owner())
	assert.Same(t, bruno, b1.Owner())
	assert.Equal(t, "checking", a1.Type())
	assert.Equal(t, ledger.DefaultBranch, a1.Branch())

	assert.Equal(t, []*ledger.Account{a1, a2}, ana.Accounts())
	assert.Equal(t, []*ledger.Account{a1, b1, a2}, r.Accounts())
}

func TestOpenAccount_UnknownClient(t *testing.T) {
	r := newTestRegistry()
	_, err := r.OpenAccount("111")
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.Empty(t, r.Accounts())
}

func TestOpenAccount_UsesConfiguredLimits(t *testing.T) {
	limits := ledger.CheckingLimits{Ceiling: decimal.NewFromInt(50), Quota: 1}
	r := New("0009", limits)
	_, err := r.RegisterClient(model.Profile{TaxID: "111"})
	require.NoError(t, err)

	a, err := r.OpenAccount("111")
	require.NoError(t, err)
	assert.Equal(t, "0009", a.Branch())

	require.NoError(t, ledger.NewDeposit(decimal.NewFromInt(500)).Apply(a))
	assert.ErrorIs(t, ledger.NewWithdrawal(decimal.NewFromInt(60)).Apply(a), ledger.ErrLimitExceeded)
	require.NoError(t, ledger.NewWithdrawal(decimal.NewFromInt(10)).Apply(a))
	assert.ErrorIs(t, ledger.NewWithdrawal(decimal.NewFromInt(10)).Apply(a), ledger.ErrQuotaExceeded)
}

func TestFindAccount(t *testing.T) {
	r := newTestRegistry()
	_, err := r.RegisterClient(model.Profile{TaxID: "111"})
	require.NoError(t, err)
	a1, err := r.OpenAccount("111")
	require.NoError(t, err)
	a2, err := r.OpenAccount("111")
	require.NoError(t, err)

	got, err := r.FindAccount(id.FormatAccountRef(ledger.DefaultBranch, 2))
	require.NoError(t, err)
	assert.Same(t, a2, got)

	got, err = r.FindAccount("0001-000001")
	require.NoError(t, err)
	assert.Same(t, a1, got)

	_, err = r.FindAccount("0001-000003")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = r.FindAccount("0002-000001")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = r.FindAccount("garbage")
	assert.Error(t, err)
}

func TestPrincipalAccount(t *testing.T) {
	r := newTestRegistry()
	c, err := r.RegisterClient(model.Profile{TaxID: "111"})
	require.NoError(t, err)

	_, err = PrincipalAccount(c)
	assert.ErrorIs(t, err, ErrNoAccount)

	first, err := r.OpenAccount("111")
	require.NoError(t, err)
	_, err = r.OpenAccount("111")
	require.NoError(t, err)

	got, err := PrincipalAccount(c)
	require.NoError(t, err)
	assert.Same(t, first, got)
}
