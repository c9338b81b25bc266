package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const ensureWallet = `
INSERT INTO wallets (user_id, balance, version, updated_at)
VALUES ($1, 0, 0, $2)
ON CONFLICT (user_id) DO NOTHING`

func (q *Queries) EnsureWallet(ctx context.Context, db DBTX, userID uuid.UUID, updatedAt pgtype.Timestamptz) error {
	_, err := db.Exec(ctx, ensureWallet, userID, updatedAt)
	return err
}

const walletColumns = `user_id, balance, version, updated_at`

func scanWallet(row interface{ Scan(...any) error }) (Wallets, error) {
	var i Wallets
	err := row.Scan(&i.UserID, &i.Balance, &i.Version, &i.UpdatedAt)
	return i, err
}

const getWalletForUpdate = `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`

func (q *Queries) GetWalletForUpdate(ctx context.Context, db DBTX, userID uuid.UUID) (Wallets, error) {
	return scanWallet(db.QueryRow(ctx, getWalletForUpdate, userID))
}

const getWallet = `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`

func (q *Queries) GetWallet(ctx context.Context, db DBTX, userID uuid.UUID) (Wallets, error) {
	return scanWallet(db.QueryRow(ctx, getWallet, userID))
}

const saveWalletBalance = `
UPDATE wallets
SET balance = $2, version = version + 1, updated_at = $3
WHERE user_id = $1 AND version = $4`

type SaveWalletBalanceParams struct {
	UserID          uuid.UUID
	Balance         pgtype.Numeric
	UpdatedAt       pgtype.Timestamptz
	ExpectedVersion int64
}

// SaveWalletBalance is a compare-and-set on version; zero rows means the read was stale.
func (q *Queries) SaveWalletBalance(ctx context.Context, db DBTX, arg SaveWalletBalanceParams) (int64, error) {
	tag, err := db.Exec(ctx, saveWalletBalance, arg.UserID, arg.Balance, arg.UpdatedAt, arg.ExpectedVersion)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const entryColumns = `id, user_id, kind, amount, status, reservation_id, external_ref, created_at, confirmed_at`

func scanEntry(row interface{ Scan(...any) error }) (WalletEntries, error) {
	var i WalletEntries
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Kind,
		&i.Amount,
		&i.Status,
		&i.ReservationID,
		&i.ExternalRef,
		&i.CreatedAt,
		&i.ConfirmedAt,
	)
	return i, err
}

const createWalletEntry = `
INSERT INTO wallet_entries (` + entryColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (q *Queries) CreateWalletEntry(ctx context.Context, db DBTX, arg WalletEntries) error {
	_, err := db.Exec(ctx, createWalletEntry,
		arg.ID,
		arg.UserID,
		arg.Kind,
		arg.Amount,
		arg.Status,
		arg.ReservationID,
		arg.ExternalRef,
		arg.CreatedAt,
		arg.ConfirmedAt,
	)
	return err
}

const confirmWalletEntry = `
UPDATE wallet_entries
SET status = 'confirmed', confirmed_at = $2
WHERE id = $1 AND status = 'pending'`

func (q *Queries) ConfirmWalletEntry(ctx context.Context, db DBTX, id uuid.UUID, confirmedAt pgtype.Timestamptz) (int64, error) {
	tag, err := db.Exec(ctx, confirmWalletEntry, id, confirmedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getWalletEntryForUpdate = `SELECT ` + entryColumns + ` FROM wallet_entries WHERE id = $1 FOR UPDATE`

func (q *Queries) GetWalletEntryForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (WalletEntries, error) {
	return scanEntry(db.QueryRow(ctx, getWalletEntryForUpdate, id))
}

const listWalletEntries = `
SELECT ` + entryColumns + `
FROM wallet_entries
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

func (q *Queries) ListWalletEntries(ctx context.Context, db DBTX, userID uuid.UUID, limit int32) ([]WalletEntries, error) {
	return collectEntries(db.Query(ctx, listWalletEntries, userID, limit))
}

const listPendingDeposits = `
SELECT ` + entryColumns + `
FROM wallet_entries
WHERE kind = 'deposit' AND status = 'pending'
ORDER BY created_at, id
LIMIT $1`

func (q *Queries) ListPendingDeposits(ctx context.Context, db DBTX, limit int32) ([]WalletEntries, error) {
	return collectEntries(db.Query(ctx, listPendingDeposits, limit))
}

func collectEntries(rows pgx.Rows, err error) ([]WalletEntries, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []WalletEntries{}
	for rows.Next() {
		i, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
