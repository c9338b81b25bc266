package repository

import (
	"context"
	"time"

	"field-rental/internal/domain/wallet"
	"field-rental/internal/infra"
	"field-rental/internal/infra/query"
	"field-rental/internal/infra/repository/converter"
	"field-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type WalletWriteQueries interface {
	EnsureWallet(ctx context.Context, db query.DBTX, userID uuid.UUID, updatedAt pgtype.Timestamptz) error
	SaveWalletBalance(ctx context.Context, db query.DBTX, arg query.SaveWalletBalanceParams) (int64, error)
}

type WalletRepository struct {
	queries WalletWriteQueries
	db      query.DBTX
}

func NewWalletRepository(queries WalletWriteQueries, db query.DBTX) *WalletRepository {
	return &WalletRepository{
		queries: queries,
		db:      db,
	}
}

func (r *WalletRepository) EnsureExists(ctx context.Context, userID uuid.UUID, now time.Time) error {
	if err := r.queries.EnsureWallet(ctx, r.db, userID, pgconv.TimeToPgtype(now)); err != nil {
		return infra.WrapRepoErr("failed to ensure wallet", err)
	}
	return nil
}

// SaveBalance writes only if nobody saved the wallet since it was read.
func (r *WalletRepository) SaveBalance(ctx context.Context, w *wallet.Wallet) error {
	n, err := r.queries.SaveWalletBalance(ctx, r.db, query.SaveWalletBalanceParams{
		UserID:          w.UserID(),
		Balance:         converter.MoneyToInfra(w.Balance()),
		UpdatedAt:       pgconv.TimeToPgtype(w.UpdatedAt()),
		ExpectedVersion: w.Version(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to save wallet balance", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindConflict, "wallet changed since it was read")
	}
	return nil
}
