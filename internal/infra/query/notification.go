package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createNotificationJob = `
INSERT INTO notification_jobs (topic, payload, status, run_at)
VALUES ($1, $2, 'queued', $3)`

func (q *Queries) CreateNotificationJob(ctx context.Context, db DBTX, topic string, payload []byte, runAt pgtype.Timestamptz) error {
	_, err := db.Exec(ctx, createNotificationJob, topic, payload, runAt)
	return err
}

// Rows locked by another relay are skipped, so relays never block each other.
const claimNotificationJobs = `
WITH due AS (
    SELECT id
    FROM notification_jobs
    WHERE status IN ('queued', 'processing') AND run_at <= $1
    ORDER BY run_at, created_at
    LIMIT $2
    FOR UPDATE SKIP LOCKED
)
UPDATE notification_jobs j
SET status = 'processing', attempts = j.attempts + 1, run_at = $3, updated_at = $1
FROM due
WHERE j.id = due.id
RETURNING j.id, j.topic, j.payload, j.attempts, j.run_at`

type ClaimNotificationJobsParams struct {
	Now        time.Time
	Limit      int32
	LeaseUntil time.Time
}

type ClaimNotificationJobsRow struct {
	ID       uuid.UUID
	Topic    string
	Payload  []byte
	Attempts int32
	RunAt    pgtype.Timestamptz
}

func (q *Queries) ClaimNotificationJobs(ctx context.Context, db DBTX, arg ClaimNotificationJobsParams) ([]ClaimNotificationJobsRow, error) {
	rows, err := db.Query(ctx, claimNotificationJobs, arg.Now, arg.Limit, arg.LeaseUntil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ClaimNotificationJobsRow{}
	for rows.Next() {
		var i ClaimNotificationJobsRow
		if err := rows.Scan(&i.ID, &i.Topic, &i.Payload, &i.Attempts, &i.RunAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateNotificationJobStatus = `
UPDATE notification_jobs
SET status = $2, last_error = $3, run_at = COALESCE($4, run_at), updated_at = now()
WHERE id = $1`

type UpdateNotificationJobStatusParams struct {
	ID        uuid.UUID
	Status    string
	LastError pgtype.Text
	RunAt     pgtype.Timestamptz
}

func (q *Queries) UpdateNotificationJobStatus(ctx context.Context, db DBTX, arg UpdateNotificationJobStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updateNotificationJobStatus, arg.ID, arg.Status, arg.LastError, arg.RunAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
