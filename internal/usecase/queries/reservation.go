package queries

import (
	"context"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/user"

	"github.com/google/uuid"
)

// Viewer is the authenticated caller a read is performed for.
type Viewer struct {
	UserID uuid.UUID
	Role   user.Role
}

type ReservationFilter struct {
	UserID *uuid.UUID
	Status *reservation.Status
	After  *Keyset
	Limit  int
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// List returns rows newest first.
	List(ctx context.Context, f ReservationFilter) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) (*ReservationPage, error)
	ListAll(ctx context.Context, status *reservation.Status, cursor string, limit int) (*ReservationPage, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

// GetByID hides other users' reservations from customers.
func (q *reservationQueriesImpl) GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrReservationNotFound)
	}
	if !viewer.Role.CanOperate() && view.UserID != viewer.UserID {
		return nil, ErrReservationNotFound
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) (*ReservationPage, error) {
	return q.list(ctx, ReservationFilter{UserID: &userID}, cursor, limit)
}

func (q *reservationQueriesImpl) ListAll(ctx context.Context, status *reservation.Status, cursor string, limit int) (*ReservationPage, error) {
	return q.list(ctx, ReservationFilter{Status: status}, cursor, limit)
}

func (q *reservationQueriesImpl) list(ctx context.Context, f ReservationFilter, cursor string, limit int) (*ReservationPage, error) {
	after, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	limit = ValidateLimit(limit)

	f.After = after
	f.Limit = limit + 1
	rows, err := q.store.List(ctx, f)
	if err != nil {
		return nil, err
	}

	page := &ReservationPage{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[limit-1]
		page.NextCursor = EncodeCursor(Keyset{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}
