package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const resourceColumns = `id, name, location, capacity, hourly_rate, description, image_url, created_at, updated_at`

func scanResource(row interface{ Scan(...any) error }) (Resources, error) {
	var i Resources
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Location,
		&i.Capacity,
		&i.HourlyRate,
		&i.Description,
		&i.ImageUrl,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createResource = `
INSERT INTO resources (` + resourceColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (q *Queries) CreateResource(ctx context.Context, db DBTX, arg Resources) error {
	_, err := db.Exec(ctx, createResource,
		arg.ID,
		arg.Name,
		arg.Location,
		arg.Capacity,
		arg.HourlyRate,
		arg.Description,
		arg.ImageUrl,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateResource = `
UPDATE resources
SET name = $2, location = $3, capacity = $4, hourly_rate = $5,
    description = $6, image_url = $7, updated_at = $8
WHERE id = $1`

func (q *Queries) UpdateResource(ctx context.Context, db DBTX, arg Resources) (int64, error) {
	tag, err := db.Exec(ctx, updateResource,
		arg.ID,
		arg.Name,
		arg.Location,
		arg.Capacity,
		arg.HourlyRate,
		arg.Description,
		arg.ImageUrl,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getResourceByID = `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`

func (q *Queries) GetResourceByID(ctx context.Context, db DBTX, id uuid.UUID) (Resources, error) {
	return scanResource(db.QueryRow(ctx, getResourceByID, id))
}

const listResources = `
SELECT ` + resourceColumns + `
FROM resources
ORDER BY name, id
LIMIT $1 OFFSET $2`

type ListResourcesParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) ListResources(ctx context.Context, db DBTX, arg ListResourcesParams) ([]Resources, error) {
	rows, err := db.Query(ctx, listResources, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Resources{}
	for rows.Next() {
		i, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}


const getResourceForUpdate = `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1 FOR UPDATE`

func (q *Queries) GetResourceForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Resources, error) {
	return scanResource(db.QueryRow(ctx, getResourceForUpdate, id))
}

const hasActiveReservationsFrom = `
SELECT EXISTS (
    SELECT 1 FROM reservations
    WHERE resource_id = $1
      AND booking_date >= $2
      AND status IN ('pending', 'accepted')
)`

type HasActiveReservationsFromParams struct {
	ResourceID  uuid.UUID
	BookingDate pgtype.Date
}

func (q *Queries) HasActiveReservationsFrom(ctx context.Context, db DBTX, arg HasActiveReservationsFromParams) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, hasActiveReservationsFrom, arg.ResourceID, arg.BookingDate).Scan(&exists)
	return exists, err
}

// Reservations of the resource go with it; wallet entries keep their reservation id.
const deleteResource = `DELETE FROM resources WHERE id = $1`

func (q *Queries) DeleteResource(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deleteResource, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
