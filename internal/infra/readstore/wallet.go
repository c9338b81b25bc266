package readstore

import (
	"context"

	"field-rental/internal/infra"
	"field-rental/internal/infra/query"
	"field-rental/internal/infra/repository/converter"
	"field-rental/internal/pkg/pgconv"
	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type WalletReadQueries interface {
	GetWallet(ctx context.Context, db query.DBTX, userID uuid.UUID) (query.Wallets, error)
	ListWalletEntries(ctx context.Context, db query.DBTX, userID uuid.UUID, limit int32) ([]query.WalletEntries, error)
	ListPendingDeposits(ctx context.Context, db query.DBTX, limit int32) ([]query.WalletEntries, error)
}

type WalletReadStore struct {
	queries WalletReadQueries
	db      query.DBTX
}

func NewWalletReadStore(queries WalletReadQueries, db query.DBTX) *WalletReadStore {
	return &WalletReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *WalletReadStore) FindByUser(ctx context.Context, userID uuid.UUID) (*queries.WalletView, error) {
	row, err := r.queries.GetWallet(ctx, r.db, userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("wallet not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find wallet", err)
	}
	balance, err := converter.MoneyFromInfra(row.Balance)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid wallet balance", err, infra.KindDBFailure)
	}
	return &queries.WalletView{
		UserID:    row.UserID,
		Balance:   balance.String(),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func (r *WalletReadStore) ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]*queries.LedgerEntryView, error) {
	rows, err := r.queries.ListWalletEntries(ctx, r.db, userID, int32(limit)) // #nosec G115 -- small fixed limit
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list wallet entries", err)
	}
	return rowsToEntryViews(rows)
}

func (r *WalletReadStore) ListPendingDeposits(ctx context.Context, limit int) ([]*queries.LedgerEntryView, error) {
	rows, err := r.queries.ListPendingDeposits(ctx, r.db, int32(limit)) // #nosec G115 -- bounded by queries.MaxListLimit
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending deposits", err)
	}
	return rowsToEntryViews(rows)
}

func rowsToEntryViews(rows []query.WalletEntries) ([]*queries.LedgerEntryView, error) {
	views := make([]*queries.LedgerEntryView, 0, len(rows))
	for _, row := range rows {
		e, err := converter.EntryFromInfra(row)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid wallet entry", err, infra.KindDBFailure)
		}
		views = append(views, &queries.LedgerEntryView{
			ID:            e.ID(),
			UserID:        e.UserID(),
			Kind:          string(e.Kind()),
			Amount:        e.Amount().String(),
			Status:        string(e.Status()),
			ReservationID: e.ReservationID(),
			ExternalRef:   e.ExternalRef(),
			CreatedAt:     e.CreatedAt(),
			ConfirmedAt:   e.ConfirmedAt(),
		})
	}
	return views, nil
}
