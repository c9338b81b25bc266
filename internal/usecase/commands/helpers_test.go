//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/user"
	"field-rental/internal/infra/memstore"
	"field-rental/internal/pkg/clock"
	"field-rental/internal/pkg/metrics"
	"field-rental/internal/usecase/commands"
	"field-rental/internal/usecase/queries"
	"field-rental/internal/usecase/shared"
	"field-rental/tests/common/builder"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var (
	testNow   = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	testToday = reservation.NewBookingDate(2025, time.March, 10)
)

type recordingInvalidator struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, resourceID uuid.UUID, date reservation.BookingDate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, resourceID.String()+"|"+date.String())
}

func (r *recordingInvalidator) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type harness struct {
	store        *memstore.Store
	clock        *clock.MockClock
	metrics      *metrics.Metrics
	invalidator  *recordingInvalidator
	reservations commands.ReservationCommands
	wallets      commands.WalletCommands
	resources    commands.ResourceCommands
	walletReads  queries.WalletQueries
	bookingReads queries.ReservationQueries
}

func newHarness() *harness {
	return newHarnessWith(func(u shared.UnitOfWork) shared.UnitOfWork { return u })
}

// newHarnessWith lets a test wrap the reservation unit of work.
func newHarnessWith(wrap func(shared.UnitOfWork) shared.UnitOfWork) *harness {
	store := memstore.New()
	clk := clock.NewMockClock(testNow)
	m := metrics.New(prometheus.NewRegistry())
	inv := &recordingInvalidator{}

	factory := reservation.NewFactory(&reservation.Services{
		Clock:           clk,
		PriceCalculator: reservation.NewHourlyRateCalculator(),
	}, time.UTC)

	return &harness{
		store:        store,
		clock:        clk,
		metrics:      m,
		invalidator:  inv,
		reservations: commands.NewReservationCommands(wrap(store), factory, commands.NewSettlement(), inv, m, time.Hour),
		wallets:      commands.NewWalletCommands(store, clk, m),
		resources:    commands.NewResourceCommands(store, factory),
		walletReads:  queries.NewWalletQueries(memstore.NewWalletReadStore(store)),
		bookingReads: queries.NewReservationQueries(memstore.NewReservationReadStore(store)),
	}
}

func (h *harness) seedResource(t *testing.T, rate int64) uuid.UUID {
	t.Helper()
	details := builder.NewResourceBuilder().WithHourlyRate(money.FromInt(rate)).BuildDetails()
	id, err := h.resources.Create(context.Background(), details)
	require.NoError(t, err)
	return id
}

func (h *harness) fund(t *testing.T, userID uuid.UUID, amount int64) {
	t.Helper()
	_, err := h.wallets.CreditTopUp(context.Background(), commands.TopUpInput{
		UserID:      userID,
		Amount:      money.FromInt(amount),
		ExternalRef: "seed-" + uuid.NewString(),
	})
	require.NoError(t, err)
}

func (h *harness) book(t *testing.T, resourceID, userID uuid.UUID, date reservation.BookingDate, slots ...int) uuid.UUID {
	t.Helper()
	res, err := h.reservations.Create(context.Background(), commands.CreateReservationInput{
		ResourceID: resourceID,
		Date:       date,
		Slots:      slots,
	}, userID, nil)
	require.NoError(t, err)
	return res.ReservationID
}

func (h *harness) balance(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	w, err := h.walletReads.GetByUser(context.Background(), userID)
	require.NoError(t, err)
	return w.Balance
}

func (h *harness) status(t *testing.T, id uuid.UUID) string {
	t.Helper()
	v, err := h.bookingReads.GetByID(context.Background(), queries.Viewer{Role: user.RoleOperator}, id)
	require.NoError(t, err)
	return v.Status
}

func (h *harness) debits(t *testing.T, userID uuid.UUID) int {
	t.Helper()
	w, err := h.walletReads.GetByUser(context.Background(), userID)
	require.NoError(t, err)
	n := 0
	for _, e := range w.Entries {
		if e.Kind == "debit" {
			n++
		}
	}
	return n
}

// staleTransitionUoW makes every status transition report that no row changed.
type staleTransitionUoW struct{ shared.UnitOfWork }

func (u staleTransitionUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.UnitOfWork.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, staleTx{tx})
	})
}

type staleTx struct{ shared.Tx }

func (t staleTx) Reservations() shared.ReservationRepository {
	return staleReservations{t.Tx.Reservations()}
}

type staleReservations struct{ shared.ReservationRepository }

func (staleReservations) TransitionStatus(context.Context, uuid.UUID, reservation.Status, reservation.Status, time.Time) (bool, error) {
	return false, nil
}

func operatorViewer() queries.Viewer {
	return queries.Viewer{UserID: uuid.New(), Role: user.RoleOperator}
}
