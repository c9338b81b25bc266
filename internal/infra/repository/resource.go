package repository

import (
	"context"

	"field-rental/internal/domain/resource"
	"field-rental/internal/infra"
	"field-rental/internal/infra/query"
	"field-rental/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type ResourceWriteQueries interface {
	CreateResource(ctx context.Context, db query.DBTX, arg query.Resources) error
	UpdateResource(ctx context.Context, db query.DBTX, arg query.Resources) (int64, error)
	DeleteResource(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error)
}

type ResourceRepository struct {
	queries ResourceWriteQueries
	db      query.DBTX
}

func NewResourceRepository(queries ResourceWriteQueries, db query.DBTX) *ResourceRepository {
	return &ResourceRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	if err := r.queries.CreateResource(ctx, r.db, converter.ResourceToInfra(res)); err != nil {
		return infra.WrapRepoErr("failed to create resource", err)
	}
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	n, err := r.queries.UpdateResource(ctx, r.db, converter.ResourceToInfra(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update resource", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteResource(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete resource", err)
	}
	if n == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	return nil
}
