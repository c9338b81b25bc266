//go:build unit

package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/infra"
	"field-rental/internal/infra/memstore"
	"field-rental/internal/usecase/queries"
	"field-rental/internal/usecase/shared"
	"field-rental/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func seedResource(t *testing.T, s *memstore.Store) uuid.UUID {
	t.Helper()
	r, err := builder.NewResourceBuilder().WithNow(now).BuildDomain()
	require.NoError(t, err)
	require.NoError(t, s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, r)
	}))
	return r.ID()
}

func TestStore_FailedTransactionLeavesNothing(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	userID := uuid.New()
	boom := errors.New("boom")

	err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.Wallets().EnsureExists(ctx, userID, now))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = memstore.NewWalletReadStore(s).FindByUser(ctx, userID)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestStore_Reservations(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	resourceID := seedResource(t, s)
	day := reservation.NewBookingDate(2025, time.March, 11)

	insert := func(start, end int) (*reservation.Reservation, error) {
		r, err := builder.NewReservationBuilder().
			WithResourceID(resourceID).
			WithDate(day).
			WithHours(start, end).
			BuildDomain()
		require.NoError(t, err)
		return r, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Reservations().Create(ctx, r)
		})
	}

	first, err := insert(14, 16)
	require.NoError(t, err)

	t.Run("overlap is refused", func(t *testing.T) {
		_, err := insert(15, 17)
		assert.True(t, infra.IsKind(err, infra.KindConflict), "got %v", err)
	})

	t.Run("touching ranges are fine", func(t *testing.T) {
		_, err := insert(16, 18)
		require.NoError(t, err)
	})

	t.Run("unknown resource", func(t *testing.T) {
		r, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		err = s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Reservations().Create(ctx, r)
		})
		assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated), "got %v", err)
	})

	t.Run("conditional transition", func(t *testing.T) {
		var ok bool
		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			ok, err = tx.Reservations().TransitionStatus(ctx, first.ID(), reservation.StatusPending, reservation.StatusRejected, now)
			return err
		}))
		assert.True(t, ok)

		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			ok, err = tx.Reservations().TransitionStatus(ctx, first.ID(), reservation.StatusPending, reservation.StatusAccepted, now)
			return err
		}))
		assert.False(t, ok)
	})

	t.Run("rejected ranges drop out of availability", func(t *testing.T) {
		ranges, err := memstore.NewReservationReadStore(s).ActiveRangesOn(ctx, resourceID, day)
		require.NoError(t, err)
		require.Len(t, ranges, 1)
		assert.Equal(t, 16, ranges[0].StartHour)
	})
}

func TestStore_WalletVersionCheck(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	userID := uuid.New()

	require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Wallets().EnsureExists(ctx, userID, now)
	}))

	stale, err := wallet.ReconstructWallet(userID, money.Zero(), 0, now)
	require.NoError(t, err)
	require.NoError(t, stale.Credit(money.FromInt(100), now))

	require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Wallets().SaveBalance(ctx, stale)
	}))

	err = s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Wallets().SaveBalance(ctx, stale)
	})
	assert.True(t, infra.IsKind(err, infra.KindConflict), "second write with the same version must lose, got %v", err)

	view, err := memstore.NewWalletReadStore(s).FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", view.Balance)
}

func TestReservationReadStore_KeysetPages(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	resourceID := seedResource(t, s)
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		r, err := builder.NewReservationBuilder().
			WithResourceID(resourceID).
			WithUserID(userID).
			WithDate(reservation.NewBookingDate(2025, time.March, 11+i)).
			With(func(b *builder.ReservationBuilder) { b.CreatedAt = now.Add(time.Duration(i) * time.Minute) }).
			BuildDomain()
		require.NoError(t, err)
		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Reservations().Create(ctx, r)
		}))
	}

	store := memstore.NewReservationReadStore(s)
	firstPage, err := store.List(ctx, queries.ReservationFilter{UserID: &userID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, firstPage, 2)
	assert.Equal(t, "2025-03-15", firstPage[0].Date)
	assert.Equal(t, "2025-03-14", firstPage[1].Date)

	last := firstPage[1]
	rest, err := store.List(ctx, queries.ReservationFilter{
		UserID: &userID,
		After:  &queries.Keyset{CreatedAt: last.CreatedAt, ID: last.ID},
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, rest, 3)
	assert.Equal(t, "2025-03-13", rest[0].Date)
	assert.Equal(t, "2025-03-11", rest[2].Date)
}

func TestOutboxStore(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	outbox := memstore.NewOutboxStore(s)

	require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Notifications().CreateJob(ctx, shared.TopicReservationCreated, []byte(`{"n":1}`), now); err != nil {
			return err
		}
		return tx.Notifications().CreateJob(ctx, shared.TopicReservationAccepted, []byte(`{"n":2}`), now.Add(time.Second))
	}))

	jobs, err := outbox.ClaimDue(ctx, now.Add(time.Second), 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, shared.TopicReservationCreated, jobs[0].Topic)
	assert.Equal(t, 1, jobs[0].Attempts)

	again, err := outbox.ClaimDue(ctx, now.Add(2*time.Second), 10, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, again, "leased jobs are not handed out twice")

	require.NoError(t, outbox.MarkSent(ctx, jobs[0].ID, now))
	retryAt := now.Add(10 * time.Second)
	require.NoError(t, outbox.MarkFailed(ctx, jobs[1].ID, "broker down", &retryAt))

	status, ok := outbox.Status(jobs[0].ID)
	require.True(t, ok)
	assert.Equal(t, shared.OutboxSent, status)

	retried, err := outbox.ClaimDue(ctx, retryAt, 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, retried, 1)
	assert.Equal(t, jobs[1].ID, retried[0].ID)
	assert.Equal(t, 2, retried[0].Attempts)

	require.NoError(t, outbox.MarkFailed(ctx, retried[0].ID, "poison", nil))
	status, _ = outbox.Status(retried[0].ID)
	assert.Equal(t, shared.OutboxFailed, status)

	expired, err := outbox.ClaimDue(ctx, retryAt.Add(time.Hour), 10, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, expired)
}
