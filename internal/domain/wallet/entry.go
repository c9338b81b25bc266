package wallet

import (
	"errors"
	"strings"
	"time"

	"field-rental/internal/domain/money"

	"github.com/google/uuid"
)

// MinDepositAmount is the smallest deposit a user may request.
const MinDepositAmount = 2000

var (
	ErrDepositBelowMinimum     = errors.New("deposit is below the minimum amount")
	ErrDepositAlreadyConfirmed = errors.New("deposit is already confirmed")
	ErrNotADeposit             = errors.New("entry is not a deposit")
	ErrMissingExternalRef      = errors.New("top-up requires an external reference")
	ErrEntryNotFound           = errors.New("ledger entry not found")
	ErrInvalidEntryKind        = errors.New("invalid ledger entry kind")
	ErrInvalidEntryStatus      = errors.New("invalid ledger entry status")
)

type EntryKind string

const (
	EntryDeposit EntryKind = "deposit"
	EntryTopUp   EntryKind = "topup"
	EntryDebit   EntryKind = "debit"
)

func (k EntryKind) IsValid() bool {
	switch k {
	case EntryDeposit, EntryTopUp, EntryDebit:
		return true
	default:
		return false
	}
}

func ParseEntryKind(s string) (EntryKind, error) {
	k := EntryKind(s)
	if !k.IsValid() {
		return "", ErrInvalidEntryKind
	}
	return k, nil
}

type EntryStatus string

const (
	EntryPending   EntryStatus = "pending"
	EntryConfirmed EntryStatus = "confirmed"
)

func ParseEntryStatus(s string) (EntryStatus, error) {
	switch st := EntryStatus(s); st {
	case EntryPending, EntryConfirmed:
		return st, nil
	default:
		return "", ErrInvalidEntryStatus
	}
}

// Entry is one line of a user's ledger. Debits reference the reservation
// they settled; top-ups carry the payment provider's reference.
type Entry struct {
	id            uuid.UUID
	userID        uuid.UUID
	kind          EntryKind
	amount        money.Money
	status        EntryStatus
	reservationID *uuid.UUID
	externalRef   *string
	createdAt     time.Time
	confirmedAt   *time.Time
}

func NewDepositRequest(userID uuid.UUID, amount money.Money, now time.Time) (*Entry, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	if amount.LessThan(money.FromInt(MinDepositAmount)) {
		return nil, ErrDepositBelowMinimum
	}
	return &Entry{
		id:        uuid.New(),
		userID:    userID,
		kind:      EntryDeposit,
		amount:    amount,
		status:    EntryPending,
		createdAt: now,
	}, nil
}

func NewDebitEntry(userID uuid.UUID, amount money.Money, reservationID uuid.UUID, now time.Time) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	return &Entry{
		id:            uuid.New(),
		userID:        userID,
		kind:          EntryDebit,
		amount:        amount,
		status:        EntryConfirmed,
		reservationID: &reservationID,
		createdAt:     now,
		confirmedAt:   &now,
	}, nil
}

func NewTopUpEntry(userID uuid.UUID, amount money.Money, externalRef string, now time.Time) (*Entry, error) {
	externalRef = strings.TrimSpace(externalRef)
	if externalRef == "" {
		return nil, ErrMissingExternalRef
	}
	if userID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	return &Entry{
		id:          uuid.New(),
		userID:      userID,
		kind:        EntryTopUp,
		amount:      amount,
		status:      EntryConfirmed,
		externalRef: &externalRef,
		createdAt:   now,
		confirmedAt: &now,
	}, nil
}

func ReconstructEntry(
	id, userID uuid.UUID,
	kind EntryKind,
	amount money.Money,
	status EntryStatus,
	reservationID *uuid.UUID,
	externalRef *string,
	createdAt time.Time,
	confirmedAt *time.Time,
) *Entry {
	return &Entry{
		id:            id,
		userID:        userID,
		kind:          kind,
		amount:        amount,
		status:        status,
		reservationID: reservationID,
		externalRef:   externalRef,
		createdAt:     createdAt,
		confirmedAt:   confirmedAt,
	}
}

// Confirm settles a pending deposit. The caller credits the wallet in the same transaction.
func (e *Entry) Confirm(now time.Time) error {
	if e.kind != EntryDeposit {
		return ErrNotADeposit
	}
	if e.status == EntryConfirmed {
		return ErrDepositAlreadyConfirmed
	}
	e.status = EntryConfirmed
	e.confirmedAt = &now
	return nil
}

func (e *Entry) ID() uuid.UUID             { return e.id }
func (e *Entry) UserID() uuid.UUID         { return e.userID }
func (e *Entry) Kind() EntryKind           { return e.kind }
func (e *Entry) Amount() money.Money       { return e.amount }
func (e *Entry) Status() EntryStatus       { return e.status }
func (e *Entry) ReservationID() *uuid.UUID { return e.reservationID }
func (e *Entry) ExternalRef() *string      { return e.externalRef }
func (e *Entry) CreatedAt() time.Time      { return e.createdAt }
func (e *Entry) ConfirmedAt() *time.Time   { return e.confirmedAt }
