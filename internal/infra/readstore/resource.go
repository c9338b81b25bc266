package readstore

import (
	"context"

	"field-rental/internal/infra"
	"field-rental/internal/infra/query"
	"field-rental/internal/infra/repository/converter"
	"field-rental/internal/pkg/pgconv"
	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceReadQueries interface {
	GetResourceByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Resources, error)
	ListResources(ctx context.Context, db query.DBTX, arg query.ListResourcesParams) ([]query.Resources, error)
}

type ResourceReadStore struct {
	queries ResourceReadQueries
	db      query.DBTX
}

func NewResourceReadStore(queries ResourceReadQueries, db query.DBTX) *ResourceReadStore {
	return &ResourceReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	row, err := r.queries.GetResourceByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return rowToResourceView(row)
}

func (r *ResourceReadStore) List(ctx context.Context, limit, offset int) ([]*queries.ResourceView, error) {
	rows, err := r.queries.ListResources(ctx, r.db, query.ListResourcesParams{
		Limit:  int32(limit),  // #nosec G115 -- bounded by queries.MaxListLimit
		Offset: int32(offset), // #nosec G115 -- validated by the handler
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}

	views := make([]*queries.ResourceView, 0, len(rows))
	for _, row := range rows {
		v, err := rowToResourceView(row)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func rowToResourceView(row query.Resources) (*queries.ResourceView, error) {
	res, err := converter.ResourceFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid resource row", err, infra.KindDBFailure)
	}
	return &queries.ResourceView{
		ID:          res.ID(),
		Name:        res.Name(),
		Location:    res.Location(),
		Capacity:    res.Capacity().String(),
		Players:     res.Capacity().Players(),
		HourlyRate:  res.HourlyRate().String(),
		Description: res.Description(),
		ImageURL:    res.ImageURL(),
		CreatedAt:   res.CreatedAt(),
		UpdatedAt:   res.UpdatedAt(),
	}, nil
}
