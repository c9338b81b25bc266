package converter

import (
	"fmt"

	"field-rental/internal/domain/wallet"
	"field-rental/internal/infra/query"
	"field-rental/internal/pkg/pgconv"
)

func WalletFromInfra(row query.Wallets) (*wallet.Wallet, error) {
	balance, err := MoneyFromInfra(row.Balance)
	if err != nil {
		return nil, fmt.Errorf("wallet %s balance: %w", row.UserID, err)
	}
	return wallet.ReconstructWallet(row.UserID, balance, row.Version, pgconv.TimeFromPgtype(row.UpdatedAt))
}

func EntryToInfra(e *wallet.Entry) query.WalletEntries {
	return query.WalletEntries{
		ID:            e.ID(),
		UserID:        e.UserID(),
		Kind:          string(e.Kind()),
		Amount:        MoneyToInfra(e.Amount()),
		Status:        string(e.Status()),
		ReservationID: pgconv.UUIDPtrToPgtype(e.ReservationID()),
		ExternalRef:   pgconv.StringPtrToPgtype(e.ExternalRef()),
		CreatedAt:     pgconv.TimeToPgtype(e.CreatedAt()),
		ConfirmedAt:   pgconv.TimePtrToPgtype(e.ConfirmedAt()),
	}
}

func EntryFromInfra(row query.WalletEntries) (*wallet.Entry, error) {
	amount, err := MoneyFromInfra(row.Amount)
	if err != nil {
		return nil, fmt.Errorf("wallet entry %s amount: %w", row.ID, err)
	}
	kind, err := wallet.ParseEntryKind(row.Kind)
	if err != nil {
		return nil, err
	}
	status, err := wallet.ParseEntryStatus(row.Status)
	if err != nil {
		return nil, err
	}
	return wallet.ReconstructEntry(
		row.ID,
		row.UserID,
		kind,
		amount,
		status,
		pgconv.UUIDPtrFromPgtype(row.ReservationID),
		pgconv.StringPtrFromPgtype(row.ExternalRef),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimePtrFromPgtype(row.ConfirmedAt),
	), nil
}
