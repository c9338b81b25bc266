package repository

import (
	"context"
	"time"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/infra"
	"field-rental/internal/infra/query"
	"field-rental/internal/infra/repository/converter"
	"field-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db query.DBTX, arg query.Reservations) error
	TransitionReservationStatus(ctx context.Context, db query.DBTX, arg query.TransitionReservationStatusParams) (int64, error)
	DeleteReservation(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      query.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db query.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

// Create maps an overlap caught by the exclusion constraint to KindConflict.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	err := r.queries.CreateReservation(ctx, r.db, converter.ReservationToInfra(res))
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status, at time.Time) (bool, error) {
	n, err := r.queries.TransitionReservationStatus(ctx, r.db, query.TransitionReservationStatusParams{
		ID:        id,
		From:      from.String(),
		To:        to.String(),
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition reservation status", err)
	}
	return n == 1, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.queries.DeleteReservation(ctx, r.db, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete reservation", err)
	}
	return n == 1, nil
}
