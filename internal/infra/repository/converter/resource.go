package converter

import (
	"fmt"

	"field-rental/internal/domain/resource"
	"field-rental/internal/infra/query"
	"field-rental/internal/pkg/pgconv"
)

func ResourceToInfra(r *resource.Resource) query.Resources {
	return query.Resources{
		ID:          r.ID(),
		Name:        r.Name(),
		Location:    r.Location(),
		Capacity:    r.Capacity().String(),
		HourlyRate:  MoneyToInfra(r.HourlyRate()),
		Description: r.Description(),
		ImageUrl:    r.ImageURL(),
		CreatedAt:   pgconv.TimeToPgtype(r.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func ResourceFromInfra(row query.Resources) (*resource.Resource, error) {
	rate, err := MoneyFromInfra(row.HourlyRate)
	if err != nil {
		return nil, fmt.Errorf("resource %s rate: %w", row.ID, err)
	}
	capacity, err := resource.ParseCapacity(row.Capacity)
	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", row.ID, err)
	}
	return resource.ReconstructResource(row.ID, resource.Details{
		Name:        row.Name,
		Location:    row.Location,
		Capacity:    capacity,
		HourlyRate:  rate,
		Description: row.Description,
		ImageURL:    row.ImageUrl,
	}, pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt)), nil
}
