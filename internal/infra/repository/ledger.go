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

type LedgerWriteQueries interface {
	CreateWalletEntry(ctx context.Context, db query.DBTX, arg query.WalletEntries) error
	ConfirmWalletEntry(ctx context.Context, db query.DBTX, id uuid.UUID, confirmedAt pgtype.Timestamptz) (int64, error)
}

type LedgerRepository struct {
	queries LedgerWriteQueries
	db      query.DBTX
}

func NewLedgerRepository(queries LedgerWriteQueries, db query.DBTX) *LedgerRepository {
	return &LedgerRepository{
		queries: queries,
		db:      db,
	}
}

// Append reports a repeated external reference as KindDuplicateKey.
func (r *LedgerRepository) Append(ctx context.Context, e *wallet.Entry) error {
	if err := r.queries.CreateWalletEntry(ctx, r.db, converter.EntryToInfra(e)); err != nil {
		return infra.WrapRepoErr("failed to append wallet entry", err)
	}
	return nil
}

func (r *LedgerRepository) Confirm(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	n, err := r.queries.ConfirmWalletEntry(ctx, r.db, id, pgconv.TimeToPgtype(at))
	if err != nil {
		return false, infra.WrapRepoErr("failed to confirm wallet entry", err)
	}
	return n == 1, nil
}
