package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, resource_id, user_id, booking_date, start_hour, end_hour, charge, status, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (Reservations, error) {
	var i Reservations
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.UserID,
		&i.BookingDate,
		&i.StartHour,
		&i.EndHour,
		&i.Charge,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createReservation = `
INSERT INTO reservations (` + reservationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg Reservations) error {
	_, err := db.Exec(ctx, createReservation,
		arg.ID,
		arg.ResourceID,
		arg.UserID,
		arg.BookingDate,
		arg.StartHour,
		arg.EndHour,
		arg.Charge,
		arg.Status,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const transitionReservationStatus = `
UPDATE reservations
SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2`

type TransitionReservationStatusParams struct {
	ID        uuid.UUID
	From      string
	To        string
	UpdatedAt pgtype.Timestamptz
}

// TransitionReservationStatus only changes a row still in From.
func (q *Queries) TransitionReservationStatus(ctx context.Context, db DBTX, arg TransitionReservationStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, transitionReservationStatus, arg.ID, arg.From, arg.To, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteReservation = `DELETE FROM reservations WHERE id = $1`

func (q *Queries) DeleteReservation(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deleteReservation, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getReservationForUpdate = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

func (q *Queries) GetReservationForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	return scanReservation(db.QueryRow(ctx, getReservationForUpdate, id))
}

const lockResourceDay = `SELECT pg_advisory_xact_lock(hashtextextended($1::uuid::text || '|' || $2::date::text, 0))`

type LockResourceDayParams struct {
	ResourceID  uuid.UUID
	BookingDate pgtype.Date
}

// LockResourceDay blocks until no other transaction holds the same resource and date.
func (q *Queries) LockResourceDay(ctx context.Context, db DBTX, arg LockResourceDayParams) error {
	_, err := db.Exec(ctx, lockResourceDay, arg.ResourceID, arg.BookingDate)
	return err
}

const listActiveRanges = `
SELECT booking_date, start_hour, end_hour, status
FROM reservations
WHERE resource_id = $1 AND booking_date = $2 AND status IN ('pending', 'accepted')
ORDER BY start_hour`

type ListActiveRangesParams struct {
	ResourceID  uuid.UUID
	BookingDate pgtype.Date
}

type ListActiveRangesRow struct {
	BookingDate pgtype.Date
	StartHour   int16
	EndHour     int16
	Status      string
}

func (q *Queries) ListActiveRanges(ctx context.Context, db DBTX, arg ListActiveRangesParams) ([]ListActiveRangesRow, error) {
	rows, err := db.Query(ctx, listActiveRanges, arg.ResourceID, arg.BookingDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ListActiveRangesRow{}
	for rows.Next() {
		var i ListActiveRangesRow
		if err := rows.Scan(&i.BookingDate, &i.StartHour, &i.EndHour, &i.Status); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const reservationViewColumns = `
r.id, r.resource_id, s.name, r.user_id, r.booking_date, r.start_hour, r.end_hour,
r.charge, r.status, r.created_at, r.updated_at`

type ReservationViewRow struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	UserID       uuid.UUID
	BookingDate  pgtype.Date
	StartHour    int16
	EndHour      int16
	Charge       pgtype.Numeric
	Status       string
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

func scanReservationView(row interface{ Scan(...any) error }) (ReservationViewRow, error) {
	var i ReservationViewRow
	err := row.Scan(
		&i.ID,
		&i.ResourceID,
		&i.ResourceName,
		&i.UserID,
		&i.BookingDate,
		&i.StartHour,
		&i.EndHour,
		&i.Charge,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getReservationView = `
SELECT` + reservationViewColumns + `
FROM reservations r
JOIN resources s ON s.id = r.resource_id
WHERE r.id = $1`

func (q *Queries) GetReservationView(ctx context.Context, db DBTX, id uuid.UUID) (ReservationViewRow, error) {
	return scanReservationView(db.QueryRow(ctx, getReservationView, id))
}

// Newest first; the (created_at, id) keyset continues strictly after the last row seen.
const listReservationViews = `
SELECT` + reservationViewColumns + `
FROM reservations r
JOIN resources s ON s.id = r.resource_id
WHERE ($1::uuid IS NULL OR r.user_id = $1)
  AND ($2::text IS NULL OR r.status = $2)
  AND ($3::timestamptz IS NULL OR (r.created_at, r.id) < ($3, $4::uuid))
ORDER BY r.created_at DESC, r.id DESC
LIMIT $5`

type ListReservationViewsParams struct {
	UserID         pgtype.UUID
	Status         pgtype.Text
	AfterCreatedAt pgtype.Timestamptz
	AfterID        pgtype.UUID
	Limit          int32
}

func (q *Queries) ListReservationViews(ctx context.Context, db DBTX, arg ListReservationViewsParams) ([]ReservationViewRow, error) {
	rows, err := db.Query(ctx, listReservationViews,
		arg.UserID,
		arg.Status,
		arg.AfterCreatedAt,
		arg.AfterID,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ReservationViewRow{}
	for rows.Next() {
		i, err := scanReservationView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
