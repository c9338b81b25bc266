package wallet

import (
	"errors"
	"time"

	"field-rental/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrMissingOwner      = errors.New("wallet requires an owner")
	ErrNegativeBalance   = errors.New("wallet balance cannot be negative")
)

// Wallet is a user's prepaid balance. Version increases on every persisted change
// and is used for compare-and-set writes.
type Wallet struct {
	userID    uuid.UUID
	balance   money.Money
	version   int64
	updatedAt time.Time
}

func NewWallet(userID uuid.UUID, now time.Time) (*Wallet, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	return &Wallet{
		userID:    userID,
		balance:   money.Zero(),
		updatedAt: now,
	}, nil
}

func ReconstructWallet(userID uuid.UUID, balance money.Money, version int64, updatedAt time.Time) (*Wallet, error) {
	if balance.IsNegative() {
		return nil, ErrNegativeBalance
	}
	return &Wallet{
		userID:    userID,
		balance:   balance,
		version:   version,
		updatedAt: updatedAt,
	}, nil
}

// Debit leaves the wallet untouched when it fails.
func (w *Wallet) Debit(amount money.Money, now time.Time) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if w.balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	w.balance = w.balance.Sub(amount)
	w.updatedAt = now
	return nil
}

func (w *Wallet) Credit(amount money.Money, now time.Time) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	w.balance = w.balance.Add(amount)
	w.updatedAt = now
	return nil
}

// CanCover reports whether a debit of amount would succeed.
func (w *Wallet) CanCover(amount money.Money) bool {
	return !w.balance.LessThan(amount)
}

func (w *Wallet) UserID() uuid.UUID    { return w.userID }
func (w *Wallet) Balance() money.Money { return w.balance }
func (w *Wallet) Version() int64       { return w.version }
func (w *Wallet) UpdatedAt() time.Time { return w.updatedAt }
