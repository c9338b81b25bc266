//go:build unit || e2e

package builder

import (
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type WalletBuilder struct {
	UserID    uuid.UUID
	Balance   money.Money
	Version   int64
	UpdatedAt time.Time
}

func NewWalletBuilder() *WalletBuilder {
	return &WalletBuilder{
		UserID:    uuid.New(),
		Balance:   money.FromInt(500000),
		UpdatedAt: time.Now().UTC(),
	}
}

func (b *WalletBuilder) With(mutate func(*WalletBuilder)) *WalletBuilder {
	mutate(b)
	return b
}

func (b *WalletBuilder) BuildDomain() (*wallet.Wallet, error) {
	return wallet.ReconstructWallet(b.UserID, b.Balance, b.Version, b.UpdatedAt)
}

func (b *WalletBuilder) BuildView() *queries.WalletView {
	return &queries.WalletView{
		UserID:    b.UserID,
		Balance:   b.Balance.String(),
		UpdatedAt: b.UpdatedAt,
		Entries:   []*queries.LedgerEntryView{},
	}
}

func (b *WalletBuilder) WithUserID(id uuid.UUID) *WalletBuilder {
	b.UserID = id
	return b
}

func (b *WalletBuilder) WithBalance(balance money.Money) *WalletBuilder {
	b.Balance = balance
	return b
}
