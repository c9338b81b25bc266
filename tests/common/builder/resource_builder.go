//go:build unit || e2e

package builder

import (
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/resource"
	reqdto "field-rental/internal/handler/dto/request"
	"field-rental/internal/usecase/queries"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

type ResourceBuilder struct {
	ID          uuid.UUID
	Name        string
	Location    string
	Capacity    resource.Capacity
	HourlyRate  money.Money
	Description string
	ImageURL    string
	Now         time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		ID:          uuid.New(),
		Name:        "Pitch " + gofakeit.LetterN(3),
		Location:    gofakeit.Street(),
		Capacity:    resource.CapacitySmall,
		HourlyRate:  money.FromInt(200000),
		Description: gofakeit.Sentence(8),
		ImageURL:    gofakeit.URL(),
		Now:         time.Now(),
	}
}

func (b *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ResourceBuilder) BuildDetails() resource.Details {
	return resource.Details{
		Name:        b.Name,
		Location:    b.Location,
		Capacity:    b.Capacity,
		HourlyRate:  b.HourlyRate,
		Description: b.Description,
		ImageURL:    b.ImageURL,
	}
}

func (b *ResourceBuilder) BuildDomain() (*resource.Resource, error) {
	return resource.NewResource(b.BuildDetails(), b.Now)
}

// BuildStored skips validation, the way rows come back from a store.
func (b *ResourceBuilder) BuildStored() *resource.Resource {
	return resource.ReconstructResource(b.ID, b.BuildDetails(), b.Now, b.Now)
}

func (b *ResourceBuilder) BuildView() *queries.ResourceView {
	return &queries.ResourceView{
		ID:          b.ID,
		Name:        b.Name,
		Location:    b.Location,
		Capacity:    b.Capacity.String(),
		Players:     b.Capacity.Players(),
		HourlyRate:  b.HourlyRate.String(),
		Description: b.Description,
		ImageURL:    b.ImageURL,
		CreatedAt:   b.Now,
		UpdatedAt:   b.Now,
	}
}

func (b *ResourceBuilder) BuildCreateRequestDTO() reqdto.CreateResourceRequest {
	return reqdto.CreateResourceRequest{
		Name:        b.Name,
		Location:    b.Location,
		Capacity:    b.Capacity.String(),
		HourlyRate:  b.HourlyRate.String(),
		Description: b.Description,
		ImageURL:    b.ImageURL,
	}
}

// Fluent builder methods
func (b *ResourceBuilder) WithID(id uuid.UUID) *ResourceBuilder {
	b.ID = id
	return b
}

func (b *ResourceBuilder) WithName(name string) *ResourceBuilder {
	b.Name = name
	return b
}

func (b *ResourceBuilder) WithCapacity(c resource.Capacity) *ResourceBuilder {
	b.Capacity = c
	return b
}

func (b *ResourceBuilder) WithHourlyRate(rate money.Money) *ResourceBuilder {
	b.HourlyRate = rate
	return b
}

func (b *ResourceBuilder) WithNow(now time.Time) *ResourceBuilder {
	b.Now = now
	return b
}
