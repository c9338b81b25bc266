package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/resource"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/infra"
	"field-rental/internal/infra/query"
	"field-rental/internal/infra/readstore"
	"field-rental/internal/infra/repository"
	"field-rental/internal/infra/repository/converter"
	"field-rental/internal/pkg/errs"
	"field-rental/internal/pkg/pgconv"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	maxRetries  = 3
	backoffBase = 100 * time.Millisecond
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, options pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool TxBeginner
	q    *query.Queries
}

func NewPostgresUoW(pool TxBeginner, q *query.Queries) *PostgresUoW {
	return &PostgresUoW{
		pool: pool,
		q:    q,
	}
}

// Within uses ReadCommitted; overlapping bookings are kept apart by the per-day advisory
// lock and the exclusion constraint, wallets by row locks and the version check.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; ; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return infra.WrapRepoErr("begin transaction", errs.Mark(err, errTransactionBegin))
		}

		err = fn(ctx, &pgTx{dbtx: pgxTx, uow: u})
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !infra.IsRetryable(err) {
			return err
		}
		if attempt == maxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return infra.WrapRepoErr("transaction contention", err, infra.KindContention)
		}

		waitTime := calculateBackoff(attempt, backoffBase)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}

type pgTx struct {
	dbtx query.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	reservationRepo  shared.ReservationRepository
	resourceRepo     shared.ResourceRepository
	walletRepo       shared.WalletRepository
	ledgerRepo       shared.LedgerRepository
	idempotencyRepo  shared.IdempotencyRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.uow.q, t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Resources() shared.ResourceRepository {
	if t.resourceRepo == nil {
		t.resourceRepo = repository.NewResourceRepository(t.uow.q, t.dbtx)
	}
	return t.resourceRepo
}

func (t *pgTx) Wallets() shared.WalletRepository {
	if t.walletRepo == nil {
		t.walletRepo = repository.NewWalletRepository(t.uow.q, t.dbtx)
	}
	return t.walletRepo
}

func (t *pgTx) Ledger() shared.LedgerRepository {
	if t.ledgerRepo == nil {
		t.ledgerRepo = repository.NewLedgerRepository(t.uow.q, t.dbtx)
	}
	return t.ledgerRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.uow.q, t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.uow.q, t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			q:    t.uow.q,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

func (t *pgTx) LockResourceDay(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) error {
	err := t.uow.q.LockResourceDay(ctx, t.dbtx, query.LockResourceDayParams{
		ResourceID:  resourceID,
		BookingDate: converter.DateToInfra(date),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to lock resource day", err)
	}
	return nil
}

type commandReads struct {
	q    *query.Queries
	dbtx query.DBTX

	idempotencyStore *readstore.IdempotencyReadStore
}

func (r *commandReads) ResourceByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, err := r.q.GetResourceByID(ctx, r.dbtx, id)
	if err != nil {
		return nil, notFoundOr("resource", err)
	}
	res, err := converter.ResourceFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid resource row", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *commandReads) ResourceForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, err := r.q.GetResourceForUpdate(ctx, r.dbtx, id)
	if err != nil {
		return nil, notFoundOr("resource", err)
	}
	res, err := converter.ResourceFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid resource row", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *commandReads) HasActiveReservationsFrom(ctx context.Context, resourceID uuid.UUID, from reservation.BookingDate) (bool, error) {
	ok, err := r.q.HasActiveReservationsFrom(ctx, r.dbtx, query.HasActiveReservationsFromParams{
		ResourceID:  resourceID,
		BookingDate: converter.DateToInfra(from),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check upcoming reservations", err)
	}
	return ok, nil
}

func (r *commandReads) ReservationForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.q.GetReservationForUpdate(ctx, r.dbtx, id)
	if err != nil {
		return nil, notFoundOr("reservation", err)
	}
	res, err := converter.ReservationFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation row", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *commandReads) ActiveRangesOn(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) ([]reservation.BookedRange, error) {
	return readstore.ActiveRanges(ctx, r.q, r.dbtx, resourceID, date)
}

func (r *commandReads) WalletForUpdate(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	row, err := r.q.GetWalletForUpdate(ctx, r.dbtx, userID)
	if err != nil {
		return nil, notFoundOr("wallet", err)
	}
	w, err := converter.WalletFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid wallet row", err, infra.KindDBFailure)
	}
	return w, nil
}

func (r *commandReads) LedgerEntryForUpdate(ctx context.Context, id uuid.UUID) (*wallet.Entry, error) {
	row, err := r.q.GetWalletEntryForUpdate(ctx, r.dbtx, id)
	if err != nil {
		return nil, notFoundOr("wallet entry", err)
	}
	e, err := converter.EntryFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid wallet entry row", err, infra.KindDBFailure)
	}
	return e, nil
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	if r.idempotencyStore == nil {
		r.idempotencyStore = readstore.NewIdempotencyReadStore(r.q)
	}
	return r.idempotencyStore.Get(ctx, r.dbtx, key, userID)
}

func notFoundOr(what string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(what+" not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to load "+what, err)
}
