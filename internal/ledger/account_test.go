package ledger

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minibank-dev/minibank/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestClient() *Client {
	return NewClient(model.Profile{TaxID: "12345678900", Name: "Ana"})
}

// fixedClock returns a clock that the test can move forward.
func fixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestNewAccount_Defaults(t *testing.T) {
	owner := newTestClient()
	a := NewAccount(1, owner)

	assert.Equal(t, 1, a.Number())
	assert.Equal(t, DefaultBranch, a.Branch())
	assert.Same(t, owner, a.Owner())
	assert.Equal(t, "basic", a.Type())
	assert.True(t, a.Balance().IsZero())
	assert.Empty(t, a.Events())
}

func TestNewAccount_Options(t *testing.T) {
	a := NewCheckingAccount(7, newTestClient(), DefaultCheckingLimits(), WithBranch("0042"))
	assert.Equal(t, "0042", a.Branch())
	assert.Equal(t, "checking", a.Type())
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr error
		want    string
	}{
		{"100.00", nil, "100.00"},
		{"0.01", nil, "0.01"},
		{"0", ErrInvalidAmount, "0.00"},
		{"-50.00", ErrInvalidAmount, "0.00"},
	}
	for _, tt := range tests {
		a := NewAccount(1, newTestClient())
		err := a.Deposit(dec(tt.amount))
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "deposit %s", tt.amount)
		} else {
			assert.NoError(t, err, "deposit %s", tt.amount)
		}
		assert.Equal(t, tt.want, a.Balance().StringFixed(2), "deposit %s", tt.amount)
		assert.Empty(t, a.Events(), "Account.Deposit must not record history")
	}
}

func TestWithdraw_BranchOrder(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
		want    string
	}{
		{"within balance", "40.00", nil, "60.00"},
		{"whole balance", "100.00", nil, "0.00"},
		{"above balance", "100.01", ErrInsufficientFunds, "100.00"},
		{"zero", "0", ErrInvalidAmount, "100.00"},
		{"negative", "-5", ErrInvalidAmount, "100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccount(1, newTestClient())
			require.NoError(t, a.Deposit(dec("100.00")))

			err := a.Withdraw(dec(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, a.Balance().StringFixed(2))
		})
	}
}

func TestWithdraw_ZeroOnEmptyAccount(t *testing.T) {
	a := NewAccount(1, newTestClient())
	err := a.Withdraw(decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestApply_RecordsOnlySuccess(t *testing.T) {
	a := NewAccount(1, newTestClient())

	require.NoError(t, NewDeposit(dec("50.00")).Apply(a))
	assert.ErrorIs(t, NewDeposit(dec("-1")).Apply(a), ErrInvalidAmount)
	assert.ErrorIs(t, NewWithdrawal(dec("80.00")).Apply(a), ErrInsufficientFunds)
	require.NoError(t, NewWithdrawal(dec("20.00")).Apply(a))

	events := a.Events()
	require.Len(t, events, 2)
	assert.Equal(t, model.KindDeposit, events[0].Kind)
	assert.True(t, events[0].Amount.Equal(dec("50.00")))
	assert.Equal(t, model.KindWithdrawal, events[1].Kind)
	assert.True(t, events[1].Amount.Equal(dec("20.00")))
	assert.NotEqual(t, events[0].ID, events[1].ID)
	assert.Equal(t, "30.00", a.Balance().StringFixed(2))
}

func TestApply_TimestampsFromClock(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	clock, advance := fixedClock(start)
	a := NewAccount(1, newTestClient(), WithClock(clock))

	require.NoError(t, NewDeposit(dec("10")).Apply(a))
	advance(time.Minute)
	require.NoError(t, NewDeposit(dec("10")).Apply(a))

	events := a.Events()
	require.Len(t, events, 2)
	assert.Equal(t, start, events[0].Time)
	assert.Equal(t, start.Add(time.Minute), events[1].Time)
}

func TestEvents_ReturnsCopy(t *testing.T) {
	a := NewAccount(1, newTestClient())
	require.NoError(t, NewDeposit(dec("10")).Apply(a))

	events := a.Events()
	events[0].Amount = dec("999")

	assert.True(t, a.Events()[0].Amount.Equal(dec("10")))
}

func TestBalanceMatchesSuccessfulTransactions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, a := range []*Account{
		NewAccount(1, newTestClient()),
		NewCheckingAccount(2, newTestClient(), CheckingLimits{Ceiling: dec("150"), Quota: 40}),
	} {
		want := decimal.Zero
		succeeded := 0
		for i := 0; i < 500; i++ {
			amount := decimal.New(rng.Int63n(25000)-2000, -2) // -20.00 .. 229.99
			var tx Transaction = NewDeposit(amount)
			if rng.Intn(2) == 0 {
				tx = NewWithdrawal(amount)
			}

			before := a.Balance()
			if err := tx.Apply(a); err != nil {
				assert.True(t, before.Equal(a.Balance()), "rejected %s changed the balance", tx.Kind())
				continue
			}
			succeeded++
			if tx.Kind() == model.KindDeposit {
				want = want.Add(amount)
			} else {
				want = want.Sub(amount)
			}
			require.False(t, a.Balance().IsNegative(), "balance went negative")
		}

		assert.True(t, want.Equal(a.Balance()), "%s: want %s, got %s", a.Type(), want, a.Balance())
		assert.Len(t, a.Events(), succeeded)
	}
}

func TestApply_Concurrent(t *testing.T) {
	a := NewAccount(1, newTestClient())

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, NewDeposit(decimal.NewFromInt(1)).Apply(a))
		}()
	}
	wg.Wait()

	assert.True(t, a.Balance().Equal(decimal.NewFromInt(workers)))
	assert.Len(t, a.Events(), workers)
}
