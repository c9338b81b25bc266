package repository

import (
	"context"
	"time"

	"field-rental/internal/infra"
	"field-rental/internal/infra/query"
	"field-rental/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db query.DBTX, topic string, payload []byte, runAt pgtype.Timestamptz) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
	db      query.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db query.DBTX) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, topic string, payload []byte, runAt time.Time) error {
	err := r.queries.CreateNotificationJob(ctx, r.db, topic, payload, pgconv.TimeToPgtype(runAt))
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
