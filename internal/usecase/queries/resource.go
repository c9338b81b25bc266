package queries

import (
	"context"

	"github.com/google/uuid"
)

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, limit, offset int) ([]*ResourceView, error)
}

type ResourceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, limit, offset int) ([]*ResourceView, error)
}

type resourceQueriesImpl struct {
	store ResourceReadStore
}

func NewResourceQueries(store ResourceReadStore) ResourceQueries {
	return &resourceQueriesImpl{store: store}
}

func (q *resourceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrResourceNotFound)
	}
	return view, nil
}

func (q *resourceQueriesImpl) List(ctx context.Context, limit, offset int) ([]*ResourceView, error) {
	if offset < 0 {
		offset = 0
	}
	return q.store.List(ctx, ValidateLimit(limit), offset)
}
