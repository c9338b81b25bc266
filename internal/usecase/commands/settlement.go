package commands

import (
	"context"
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/infra"
	"field-rental/internal/pkg/errs"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

// Settlement debits a wallet inside the caller's transaction. Nothing it writes
// survives unless that transaction commits.
type Settlement struct{}

func NewSettlement() *Settlement {
	return &Settlement{}
}

// Settle returns the balance after the debit. A failure leaves the wallet untouched.
func (s *Settlement) Settle(
	ctx context.Context,
	tx shared.Tx,
	userID uuid.UUID,
	amount money.Money,
	reservationID uuid.UUID,
	now time.Time,
) (money.Money, error) {
	w, err := tx.Reads().WalletForUpdate(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return money.Money{}, errs.Mark(err, wallet.ErrWalletNotFound)
		}
		return money.Money{}, translate(err, nil)
	}

	if err = w.Debit(amount, now); err != nil {
		return money.Money{}, err
	}

	if err = tx.Wallets().SaveBalance(ctx, w); err != nil {
		return money.Money{}, translate(err, wallet.ErrWalletNotFound)
	}

	entry, err := wallet.NewDebitEntry(userID, amount, reservationID, now)
	if err != nil {
		return money.Money{}, err
	}
	if err = tx.Ledger().Append(ctx, entry); err != nil {
		return money.Money{}, err
	}

	return w.Balance(), nil
}
