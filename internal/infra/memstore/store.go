// Package memstore is an in-process implementation of the unit-of-work and read-store
// ports. Transactions run one at a time against a private copy of the data and publish
// it on commit, so a failed transaction leaves nothing behind.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/resource"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	txMu sync.Mutex   // one writer at a time
	mu   sync.RWMutex // guards data
	data *state
}

func New() *Store {
	return &Store{data: newState()}
}

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type resourceRow struct {
	id        uuid.UUID
	details   resource.Details
	createdAt time.Time
	updatedAt time.Time
}

type reservationRow struct {
	id         uuid.UUID
	resourceID uuid.UUID
	userID     uuid.UUID
	date       reservation.BookingDate
	startHour  int
	endHour    int
	charge     money.Money
	status     reservation.Status
	createdAt  time.Time
	updatedAt  time.Time
}

type walletRow struct {
	userID    uuid.UUID
	balance   money.Money
	version   int64
	updatedAt time.Time
}

type entryRow struct {
	id            uuid.UUID
	userID        uuid.UUID
	kind          wallet.EntryKind
	amount        money.Money
	status        wallet.EntryStatus
	reservationID *uuid.UUID
	externalRef   *string
	createdAt     time.Time
	confirmedAt   *time.Time
}

type idemRow struct {
	record    shared.IdempotencyRecord
	endpoint  string
	createdAt time.Time
}

type jobRow struct {
	id        uuid.UUID
	topic     string
	payload   []byte
	status    shared.OutboxStatus
	attempts  int
	runAt     time.Time
	lastError string
	createdAt time.Time
}

type state struct {
	resources    map[uuid.UUID]resourceRow
	reservations map[uuid.UUID]reservationRow
	wallets      map[uuid.UUID]walletRow
	entries      map[uuid.UUID]entryRow
	externalRefs map[string]uuid.UUID
	idempotency  map[idemKey]idemRow
	jobs         map[uuid.UUID]jobRow
}

func newState() *state {
	return &state{
		resources:    map[uuid.UUID]resourceRow{},
		reservations: map[uuid.UUID]reservationRow{},
		wallets:      map[uuid.UUID]walletRow{},
		entries:      map[uuid.UUID]entryRow{},
		externalRefs: map[string]uuid.UUID{},
		idempotency:  map[idemKey]idemRow{},
		jobs:         map[uuid.UUID]jobRow{},
	}
}

func (s *state) clone() *state {
	return &state{
		resources:    maps.Clone(s.resources),
		reservations: maps.Clone(s.reservations),
		wallets:      maps.Clone(s.wallets),
		entries:      maps.Clone(s.entries),
		externalRefs: maps.Clone(s.externalRefs),
		idempotency:  maps.Clone(s.idempotency),
		jobs:         maps.Clone(s.jobs),
	}
}

// Within holds the writer lock for the whole of fn, which makes every transaction
// serializable and subsumes the per-resource-day lock.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.atomically(ctx, func(st *state) error {
		return fn(ctx, &memTx{st: st})
	})
}

func (s *Store) atomically(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	working := s.data.clone()
	s.mu.RUnlock()

	if err := fn(working); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = working
	s.mu.Unlock()
	return nil
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// Postgres keeps microseconds; matching it keeps cursors stable across stores.
func pgTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
