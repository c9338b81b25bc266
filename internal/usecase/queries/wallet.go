package queries

import (
	"context"

	"github.com/google/uuid"
)

const walletEntryLimit = 50

type WalletReadStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*WalletView, error)
	ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]*LedgerEntryView, error)
	ListPendingDeposits(ctx context.Context, limit int) ([]*LedgerEntryView, error)
}

type WalletQueries interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*WalletView, error)
	ListPendingDeposits(ctx context.Context, limit int) ([]*LedgerEntryView, error)
}

type walletQueriesImpl struct {
	store WalletReadStore
}

func NewWalletQueries(store WalletReadStore) WalletQueries {
	return &walletQueriesImpl{store: store}
}

// GetByUser includes the most recent ledger entries.
func (q *walletQueriesImpl) GetByUser(ctx context.Context, userID uuid.UUID) (*WalletView, error) {
	view, err := q.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrWalletNotFound)
	}
	entries, err := q.store.ListEntries(ctx, userID, walletEntryLimit)
	if err != nil {
		return nil, err
	}
	view.Entries = entries
	return view, nil
}

func (q *walletQueriesImpl) ListPendingDeposits(ctx context.Context, limit int) ([]*LedgerEntryView, error) {
	return q.store.ListPendingDeposits(ctx, ValidateLimit(limit))
}
