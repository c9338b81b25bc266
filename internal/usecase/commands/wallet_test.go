//go:build unit

package commands_test

import (
	"context"
	"testing"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/pkg/errs"
	"field-rental/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletCommands_Deposits(t *testing.T) {
	ctx := context.Background()

	t.Run("below minimum is refused", func(t *testing.T) {
		h := newHarness()
		_, err := h.wallets.RequestDeposit(ctx, uuid.New(), money.FromInt(1999))
		require.ErrorIs(t, err, wallet.ErrDepositBelowMinimum)
	})

	t.Run("request then confirm credits the wallet once", func(t *testing.T) {
		h := newHarness()
		userID := uuid.New()

		entryID, err := h.wallets.RequestDeposit(ctx, userID, money.FromInt(50000))
		require.NoError(t, err)
		assert.Equal(t, "0.00", h.balance(t, userID), "pending deposits do not count")

		pending, err := h.walletReads.ListPendingDeposits(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, entryID, pending[0].ID)

		result, err := h.wallets.ConfirmDeposit(ctx, entryID, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "50000.00", result.Balance.String())
		assert.Equal(t, "50000.00", h.balance(t, userID))

		_, err = h.wallets.ConfirmDeposit(ctx, entryID, uuid.New())
		require.ErrorIs(t, err, wallet.ErrDepositAlreadyConfirmed)
		assert.Equal(t, "50000.00", h.balance(t, userID))

		pending, err = h.walletReads.ListPendingDeposits(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("unknown entry", func(t *testing.T) {
		h := newHarness()
		_, err := h.wallets.ConfirmDeposit(ctx, uuid.New(), uuid.New())
		assert.True(t, errs.Is(err, commands.ErrDepositNotFound), "got %v", err)
	})

	t.Run("debit entries cannot be confirmed as deposits", func(t *testing.T) {
		h := newHarness()
		resourceID := h.seedResource(t, 200000)
		userID := uuid.New()
		h.fund(t, userID, 500000)
		id := h.book(t, resourceID, userID, testToday.AddDays(1), 14, 16)
		_, err := h.reservations.Accept(ctx, id, uuid.New())
		require.NoError(t, err)

		w, err := h.walletReads.GetByUser(ctx, userID)
		require.NoError(t, err)
		var debitID uuid.UUID
		for _, e := range w.Entries {
			if e.Kind == "debit" {
				debitID = e.ID
			}
		}
		require.NotEqual(t, uuid.Nil, debitID)

		_, err = h.wallets.ConfirmDeposit(ctx, debitID, uuid.New())
		assert.True(t, errs.Is(err, commands.ErrDepositNotFound), "got %v", err)
	})
}

func TestWalletCommands_CreditTopUp(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	userID := uuid.New()
	in := commands.TopUpInput{UserID: userID, Amount: money.FromInt(150000), ExternalRef: "psp-42"}

	first, err := h.wallets.CreditTopUp(ctx, in)
	require.NoError(t, err)
	assert.False(t, first.AlreadyApplied)
	assert.Equal(t, "150000.00", first.Balance.String())

	again, err := h.wallets.CreditTopUp(ctx, in)
	require.NoError(t, err)
	assert.True(t, again.AlreadyApplied)
	assert.Equal(t, "150000.00", h.balance(t, userID))

	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.TopUpsProcessed.WithLabelValues("credited")))
	assert.Equal(t, float64(1), testutil.ToFloat64(h.metrics.TopUpsProcessed.WithLabelValues("duplicate")))

	_, err = h.wallets.CreditTopUp(ctx, commands.TopUpInput{UserID: userID, Amount: money.FromInt(10), ExternalRef: "  "})
	require.ErrorIs(t, err, wallet.ErrMissingExternalRef)
}
