package request

import (
	"strings"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/resource"
)

type CreateResourceRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Location    string `json:"location" binding:"max=255"`
	Capacity    string `json:"capacity" binding:"required,oneof=small medium large"`
	HourlyRate  string `json:"hourly_rate" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}

func (r CreateResourceRequest) ToDetails() (resource.Details, error) {
	rate, err := money.Parse(r.HourlyRate)
	if err != nil {
		return resource.Details{}, err
	}
	capacity, err := resource.ParseCapacity(r.Capacity)
	if err != nil {
		return resource.Details{}, err
	}
	return resource.Details{
		Name:        strings.TrimSpace(r.Name),
		Location:    strings.TrimSpace(r.Location),
		Capacity:    capacity,
		HourlyRate:  rate,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}, nil
}

// UpdateResourceRequest leaves absent fields untouched.
type UpdateResourceRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
	Capacity    *string `json:"capacity" binding:"omitempty,oneof=small medium large"`
	HourlyRate  *string `json:"hourly_rate"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
}

func (r UpdateResourceRequest) ToPatch() (resource.Patch, error) {
	p := resource.Patch{
		Location:    r.Location,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		p.Name = &name
	}
	if r.Capacity != nil {
		c, err := resource.ParseCapacity(*r.Capacity)
		if err != nil {
			return resource.Patch{}, err
		}
		p.Capacity = &c
	}
	if r.HourlyRate != nil {
		rate, err := money.Parse(*r.HourlyRate)
		if err != nil {
			return resource.Patch{}, err
		}
		p.HourlyRate = &rate
	}
	return p, nil
}

type ListResourcesQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
