package repository

import (
	"context"
	"time"

	"field-rental/internal/infra"
	"field-rental/internal/infra/query"
	"field-rental/internal/pkg/pgconv"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type OutboxQueries interface {
	ClaimNotificationJobs(ctx context.Context, db query.DBTX, arg query.ClaimNotificationJobsParams) ([]query.ClaimNotificationJobsRow, error)
	UpdateNotificationJobStatus(ctx context.Context, db query.DBTX, arg query.UpdateNotificationJobStatusParams) (int64, error)
}

// OutboxStore runs on the pool; each call is a single statement.
type OutboxStore struct {
	queries OutboxQueries
	db      query.DBTX
}

func NewOutboxStore(queries OutboxQueries, db query.DBTX) *OutboxStore {
	return &OutboxStore{
		queries: queries,
		db:      db,
	}
}

// ClaimDue leases up to limit due jobs until now+lease. Jobs held by another relay are skipped.
func (s *OutboxStore) ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]shared.OutboxJob, error) {
	rows, err := s.queries.ClaimNotificationJobs(ctx, s.db, query.ClaimNotificationJobsParams{
		Now:        now,
		Limit:      int32(limit), // #nosec G115 -- batch size from config
		LeaseUntil: now.Add(lease),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	jobs := make([]shared.OutboxJob, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, shared.OutboxJob{
			ID:       row.ID,
			Topic:    row.Topic,
			Payload:  row.Payload,
			Attempts: int(row.Attempts),
			RunAt:    pgconv.TimeFromPgtype(row.RunAt),
		})
	}
	return jobs, nil
}

func (s *OutboxStore) MarkSent(ctx context.Context, id uuid.UUID, _ time.Time) error {
	return s.update(ctx, query.UpdateNotificationJobStatusParams{
		ID:     id,
		Status: string(shared.OutboxSent),
	})
}

// MarkFailed requeues the job at retryAt, or parks it as failed when retryAt is nil.
func (s *OutboxStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string, retryAt *time.Time) error {
	params := query.UpdateNotificationJobStatusParams{
		ID:        id,
		Status:    string(shared.OutboxFailed),
		LastError: pgconv.StringToPgtype(reason),
	}
	if retryAt != nil {
		params.Status = string(shared.OutboxQueued)
		params.RunAt = pgconv.TimeToPgtype(*retryAt)
	}
	return s.update(ctx, params)
}

func (s *OutboxStore) update(ctx context.Context, params query.UpdateNotificationJobStatusParams) error {
	n, err := s.queries.UpdateNotificationJobStatus(ctx, s.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "notification job not found")
	}
	return nil
}
