package shared

import (
	"context"
	"time"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/resource"
	"field-rental/internal/domain/wallet"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one write transaction. Serialization failures and deadlocks are retried.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to a single transaction.
type Tx interface {
	Reservations() ReservationRepository
	Resources() ResourceRepository
	Wallets() WalletRepository
	Ledger() LedgerRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	// LockResourceDay serializes bookings of one resource on one date until the transaction ends.
	LockResourceDay(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) error
}

// CommandReads load aggregates for the write side. The ForUpdate variants lock the row
// for the rest of the transaction.
type CommandReads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	ResourceForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// HasActiveReservationsFrom reports pending or accepted bookings of the resource on or after from.
	HasActiveReservationsFrom(ctx context.Context, resourceID uuid.UUID, from reservation.BookingDate) (bool, error)
	ReservationForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ActiveRangesOn(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) ([]reservation.BookedRange, error)
	WalletForUpdate(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error)
	LedgerEntryForUpdate(ctx context.Context, id uuid.UUID) (*wallet.Entry, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type ReservationRepository interface {
	// Create fails with a CONFLICT repository error when an active reservation overlaps.
	Create(ctx context.Context, res *reservation.Reservation) error
	// TransitionStatus only updates a row still in from; it reports whether one was changed.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status, at time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type ResourceRepository interface {
	Create(ctx context.Context, r *resource.Resource) error
	Update(ctx context.Context, r *resource.Resource) error
	// Delete removes the resource together with its reservations.
	Delete(ctx context.Context, id uuid.UUID) error
}

type WalletRepository interface {
	EnsureExists(ctx context.Context, userID uuid.UUID, now time.Time) error
	// SaveBalance writes only if the stored version still equals w.Version().
	SaveBalance(ctx context.Context, w *wallet.Wallet) error
}

type LedgerRepository interface {
	Append(ctx context.Context, e *wallet.Entry) error
	Confirm(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type IdempotencyRepository interface {
	// TryInsert claims the key, taking over an expired record. It reports false when a live record exists.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt, now time.Time) (bool, error)
	Complete(ctx context.Context, key, userID uuid.UUID, reservationID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, topic string, payload []byte, runAt time.Time) error
}
