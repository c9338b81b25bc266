package readstore

import (
	"context"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/infra"
	"field-rental/internal/infra/query"
	"field-rental/internal/infra/repository/converter"
	"field-rental/internal/pkg/pgconv"
	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationView(ctx context.Context, db query.DBTX, id uuid.UUID) (query.ReservationViewRow, error)
	ListReservationViews(ctx context.Context, db query.DBTX, arg query.ListReservationViewsParams) ([]query.ReservationViewRow, error)
	ListActiveRanges(ctx context.Context, db query.DBTX, arg query.ListActiveRangesParams) ([]query.ListActiveRangesRow, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      query.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db query.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return rowToReservationView(row)
}

func (r *ReservationReadStore) List(ctx context.Context, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
	params := query.ListReservationViewsParams{
		UserID: pgconv.UUIDPtrToPgtype(f.UserID),
		Limit:  int32(f.Limit), // #nosec G115 -- bounded by queries.MaxListLimit
	}
	if f.Status != nil {
		params.Status = pgconv.StringToPgtype(f.Status.String())
	}
	if f.After != nil {
		params.AfterCreatedAt = pgconv.TimeToPgtype(f.After.CreatedAt)
		params.AfterID = pgconv.UUIDToPgtype(f.After.ID)
	}

	rows, err := r.queries.ListReservationViews(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	views := make([]*queries.ReservationView, 0, len(rows))
	for _, row := range rows {
		v, err := rowToReservationView(row)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// ActiveRangesOn reads outside any transaction, so the result is only good for display.
func (r *ReservationReadStore) ActiveRangesOn(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) ([]reservation.BookedRange, error) {
	return ActiveRanges(ctx, r.queries, r.db, resourceID, date)
}

type ActiveRangeQueries interface {
	ListActiveRanges(ctx context.Context, db query.DBTX, arg query.ListActiveRangesParams) ([]query.ListActiveRangesRow, error)
}

// ActiveRanges lists the pending and accepted ranges of one resource on one date as seen by db.
func ActiveRanges(ctx context.Context, q ActiveRangeQueries, db query.DBTX, resourceID uuid.UUID, date reservation.BookingDate) ([]reservation.BookedRange, error) {
	rows, err := q.ListActiveRanges(ctx, db, query.ListActiveRangesParams{
		ResourceID:  resourceID,
		BookingDate: converter.DateToInfra(date),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked ranges", err)
	}

	ranges := make([]reservation.BookedRange, 0, len(rows))
	for _, row := range rows {
		br, err := converter.BookedRangeFromInfra(row)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid booked range", err, infra.KindDBFailure)
		}
		ranges = append(ranges, br)
	}
	return ranges, nil
}

func rowToReservationView(row query.ReservationViewRow) (*queries.ReservationView, error) {
	charge, err := converter.MoneyFromInfra(row.Charge)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation charge", err, infra.KindDBFailure)
	}
	return &queries.ReservationView{
		ID:           row.ID,
		ResourceID:   row.ResourceID,
		ResourceName: row.ResourceName,
		UserID:       row.UserID,
		Date:         converter.DateFromInfra(row.BookingDate).String(),
		StartTime:    reservation.FormatHour(int(row.StartHour)),
		EndTime:      reservation.FormatHour(int(row.EndHour)),
		Hours:        int(row.EndHour - row.StartHour),
		Charge:       charge.String(),
		Status:       row.Status,
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:    pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

