package memstore

import (
	"context"
	"sort"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/resource"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/infra"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

// commandReads see the transaction's working copy, which no other writer can touch
// until it commits, so the ForUpdate reads need no further locking.
type commandReads struct{ st *state }

func (r commandReads) ResourceByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, ok := r.st.resources[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	return resource.ReconstructResource(row.id, row.details, row.createdAt, row.updatedAt), nil
}

func (r commandReads) ResourceForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.ResourceByID(ctx, id)
}

func (r commandReads) HasActiveReservationsFrom(_ context.Context, resourceID uuid.UUID, from reservation.BookingDate) (bool, error) {
	for _, row := range r.st.reservations {
		if row.resourceID == resourceID && row.status.IsActive() && !row.date.Before(from) {
			return true, nil
		}
	}
	return false, nil
}

func (r commandReads) ReservationForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, ok := r.st.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return row.toDomain()
}

func (r commandReads) ActiveRangesOn(_ context.Context, resourceID uuid.UUID, date reservation.BookingDate) ([]reservation.BookedRange, error) {
	return activeRanges(r.st, resourceID, date), nil
}

func (r commandReads) WalletForUpdate(_ context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	row, ok := r.st.wallets[userID]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "wallet not found")
	}
	return wallet.ReconstructWallet(row.userID, row.balance, row.version, row.updatedAt)
}

func (r commandReads) LedgerEntryForUpdate(_ context.Context, id uuid.UUID) (*wallet.Entry, error) {
	row, ok := r.st.entries[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "ledger entry not found")
	}
	return wallet.ReconstructEntry(row.id, row.userID, row.kind, row.amount, row.status,
		row.reservationID, row.externalRef, row.createdAt, row.confirmedAt), nil
}

func (r commandReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, ok := r.st.idempotency[idemKey{key: key, userID: userID}]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "idempotency key not found")
	}
	rec := row.record
	return &rec, nil
}

func (row reservationRow) toDomain() (*reservation.Reservation, error) {
	iv, err := reservation.NewInterval(row.date, row.startHour, row.endHour)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(row.id, row.resourceID, row.userID, iv,
		row.charge, row.status, row.createdAt, row.updatedAt), nil
}

func activeRanges(st *state, resourceID uuid.UUID, date reservation.BookingDate) []reservation.BookedRange {
	var out []reservation.BookedRange
	for _, row := range st.reservations {
		if row.resourceID != resourceID || !row.date.Equal(date) || !row.status.IsActive() {
			continue
		}
		out = append(out, reservation.BookedRange{
			Date:      row.date,
			StartHour: row.startHour,
			EndHour:   row.endHour,
			Status:    row.status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartHour < out[j].StartHour })
	return out
}
