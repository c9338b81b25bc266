//go:build unit

package wallet_test

import (
	"testing"
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/wallet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.Parse(s)
	require.NoError(t, err)
	return m
}

func TestWallet_Debit(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	newWallet := func(t *testing.T, balance string) *wallet.Wallet {
		w, err := wallet.ReconstructWallet(uuid.New(), mustMoney(t, balance), 3, now)
		require.NoError(t, err)
		return w
	}

	cases := []struct {
		name    string
		balance string
		amount  string
		errIs   error
		want    string
	}{
		{name: "exact balance", balance: "400000", amount: "400000", want: "0.00"},
		{name: "partial", balance: "500000", amount: "400000", want: "100000.00"},
		{name: "insufficient leaves balance untouched", balance: "100000", amount: "400000", errIs: wallet.ErrInsufficientFunds, want: "100000.00"},
		{name: "zero amount", balance: "100", amount: "0", errIs: wallet.ErrNonPositiveAmount, want: "100.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newWallet(t, tc.balance)

			err := w.Debit(mustMoney(t, tc.amount), now.Add(time.Minute))

			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, now, w.UpdatedAt())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, w.Balance().String())
			assert.Equal(t, int64(3), w.Version(), "version is advanced by the store")
		})
	}
}

func TestWallet_Credit(t *testing.T) {
	w, err := wallet.NewWallet(uuid.New(), time.Now())
	require.NoError(t, err)
	assert.True(t, w.Balance().IsZero())

	require.NoError(t, w.Credit(money.FromInt(2500), time.Now()))
	assert.Equal(t, "2500.00", w.Balance().String())
	assert.True(t, w.CanCover(money.FromInt(2500)))
	assert.False(t, w.CanCover(money.FromInt(2501)))

	assert.ErrorIs(t, w.Credit(money.Zero(), time.Now()), wallet.ErrNonPositiveAmount)

	_, err = wallet.NewWallet(uuid.Nil, time.Now())
	assert.ErrorIs(t, err, wallet.ErrMissingOwner)
}

func TestEntries(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	t.Run("deposit minimum", func(t *testing.T) {
		_, err := wallet.NewDepositRequest(userID, money.FromInt(1999), now)
		assert.ErrorIs(t, err, wallet.ErrDepositBelowMinimum)

		e, err := wallet.NewDepositRequest(userID, money.FromInt(wallet.MinDepositAmount), now)
		require.NoError(t, err)
		assert.Equal(t, wallet.EntryPending, e.Status())
		assert.Nil(t, e.ConfirmedAt())
	})

	t.Run("confirm once", func(t *testing.T) {
		e, err := wallet.NewDepositRequest(userID, money.FromInt(5000), now)
		require.NoError(t, err)

		require.NoError(t, e.Confirm(now))
		assert.Equal(t, wallet.EntryConfirmed, e.Status())
		assert.ErrorIs(t, e.Confirm(now), wallet.ErrDepositAlreadyConfirmed)
	})

	t.Run("only deposits confirm", func(t *testing.T) {
		e, err := wallet.NewDebitEntry(userID, money.FromInt(10), uuid.New(), now)
		require.NoError(t, err)
		assert.ErrorIs(t, e.Confirm(now), wallet.ErrNotADeposit)
		assert.NotNil(t, e.ReservationID())
	})

	t.Run("top-up needs a reference", func(t *testing.T) {
		_, err := wallet.NewTopUpEntry(userID, money.FromInt(10), "  ", now)
		assert.ErrorIs(t, err, wallet.ErrMissingExternalRef)

		e, err := wallet.NewTopUpEntry(userID, money.FromInt(10), " pay_123 ", now)
		require.NoError(t, err)
		assert.Equal(t, "pay_123", *e.ExternalRef())
		assert.Equal(t, wallet.EntryTopUp, e.Kind())
	})
}
