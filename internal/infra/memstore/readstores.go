package memstore

import (
	"bytes"
	"context"
	"sort"
	"time"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/infra"
	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationReadStore struct{ s *Store }

func NewReservationReadStore(s *Store) *ReservationReadStore {
	return &ReservationReadStore{s: s}
}

func (r *ReservationReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var view *queries.ReservationView
	r.s.read(func(st *state) {
		if row, ok := st.reservations[id]; ok {
			view = reservationView(st, row)
		}
	})
	if view == nil {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return view, nil
}

func (r *ReservationReadStore) List(_ context.Context, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
	out := []*queries.ReservationView{}
	r.s.read(func(st *state) {
		var rows []reservationRow
		for _, row := range st.reservations {
			if f.UserID != nil && row.userID != *f.UserID {
				continue
			}
			if f.Status != nil && row.status != *f.Status {
				continue
			}
			if f.After != nil && !newestFirst(f.After.CreatedAt, f.After.ID, row.createdAt, row.id) {
				continue
			}
			rows = append(rows, row)
		}
		sort.Slice(rows, func(i, j int) bool {
			return newestFirst(rows[i].createdAt, rows[i].id, rows[j].createdAt, rows[j].id)
		})
		if f.Limit > 0 && len(rows) > f.Limit {
			rows = rows[:f.Limit]
		}
		for _, row := range rows {
			out = append(out, reservationView(st, row))
		}
	})
	return out, nil
}

func (r *ReservationReadStore) ActiveRangesOn(_ context.Context, resourceID uuid.UUID, date reservation.BookingDate) ([]reservation.BookedRange, error) {
	var out []reservation.BookedRange
	r.s.read(func(st *state) { out = activeRanges(st, resourceID, date) })
	return out, nil
}

// newestFirst orders like ORDER BY created_at DESC, id DESC.
func newestFirst(aAt time.Time, aID uuid.UUID, bAt time.Time, bID uuid.UUID) bool {
	if !aAt.Equal(bAt) {
		return aAt.After(bAt)
	}
	return bytes.Compare(aID[:], bID[:]) > 0
}

func reservationView(st *state, row reservationRow) *queries.ReservationView {
	name := ""
	if res, ok := st.resources[row.resourceID]; ok {
		name = res.details.Name
	}
	return &queries.ReservationView{
		ID:           row.id,
		ResourceID:   row.resourceID,
		ResourceName: name,
		UserID:       row.userID,
		Date:         row.date.String(),
		StartTime:    reservation.FormatHour(row.startHour),
		EndTime:      reservation.FormatHour(row.endHour),
		Hours:        row.endHour - row.startHour,
		Charge:       row.charge.String(),
		Status:       row.status.String(),
		CreatedAt:    row.createdAt,
		UpdatedAt:    row.updatedAt,
	}
}

type ResourceReadStore struct{ s *Store }

func NewResourceReadStore(s *Store) *ResourceReadStore {
	return &ResourceReadStore{s: s}
}

func (r *ResourceReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	var view *queries.ResourceView
	r.s.read(func(st *state) {
		if row, ok := st.resources[id]; ok {
			view = resourceView(row)
		}
	})
	if view == nil {
		return nil, infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	return view, nil
}

// List orders by name, then id.
func (r *ResourceReadStore) List(_ context.Context, limit, offset int) ([]*queries.ResourceView, error) {
	var rows []resourceRow
	r.s.read(func(st *state) {
		for _, row := range st.resources {
			rows = append(rows, row)
		}
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].details.Name != rows[j].details.Name {
			return rows[i].details.Name < rows[j].details.Name
		}
		return bytes.Compare(rows[i].id[:], rows[j].id[:]) < 0
	})

	out := []*queries.ResourceView{}
	for i := offset; i < len(rows) && len(out) < limit; i++ {
		out = append(out, resourceView(rows[i]))
	}
	return out, nil
}

func resourceView(row resourceRow) *queries.ResourceView {
	return &queries.ResourceView{
		ID:          row.id,
		Name:        row.details.Name,
		Location:    row.details.Location,
		Capacity:    row.details.Capacity.String(),
		Players:     row.details.Capacity.Players(),
		HourlyRate:  row.details.HourlyRate.String(),
		Description: row.details.Description,
		ImageURL:    row.details.ImageURL,
		CreatedAt:   row.createdAt,
		UpdatedAt:   row.updatedAt,
	}
}

type WalletReadStore struct{ s *Store }

func NewWalletReadStore(s *Store) *WalletReadStore {
	return &WalletReadStore{s: s}
}

func (r *WalletReadStore) FindByUser(_ context.Context, userID uuid.UUID) (*queries.WalletView, error) {
	var view *queries.WalletView
	r.s.read(func(st *state) {
		if row, ok := st.wallets[userID]; ok {
			view = &queries.WalletView{
				UserID:    row.userID,
				Balance:   row.balance.String(),
				UpdatedAt: row.updatedAt,
			}
		}
	})
	if view == nil {
		return nil, infra.NewRepoErr(infra.KindNotFound, "wallet not found")
	}
	return view, nil
}

func (r *WalletReadStore) ListEntries(_ context.Context, userID uuid.UUID, limit int) ([]*queries.LedgerEntryView, error) {
	return r.entries(limit, false, func(e entryRow) bool { return e.userID == userID }), nil
}

func (r *WalletReadStore) ListPendingDeposits(_ context.Context, limit int) ([]*queries.LedgerEntryView, error) {
	return r.entries(limit, true, func(e entryRow) bool {
		return e.kind == wallet.EntryDeposit && e.status == wallet.EntryPending
	}), nil
}

// entries lists newest first unless oldestFirst is set.
func (r *WalletReadStore) entries(limit int, oldestFirst bool, keep func(entryRow) bool) []*queries.LedgerEntryView {
	var rows []entryRow
	r.s.read(func(st *state) {
		for _, e := range st.entries {
			if keep(e) {
				rows = append(rows, e)
			}
		}
	})
	sort.Slice(rows, func(i, j int) bool {
		if oldestFirst {
			i, j = j, i
		}
		return newestFirst(rows[i].createdAt, rows[i].id, rows[j].createdAt, rows[j].id)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]*queries.LedgerEntryView, 0, len(rows))
	for _, e := range rows {
		out = append(out, &queries.LedgerEntryView{
			ID:            e.id,
			UserID:        e.userID,
			Kind:          string(e.kind),
			Amount:        e.amount.String(),
			Status:        string(e.status),
			ReservationID: e.reservationID,
			ExternalRef:   e.externalRef,
			CreatedAt:     e.createdAt,
			ConfirmedAt:   e.confirmedAt,
		})
	}
	return out
}
