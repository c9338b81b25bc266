package response

import (
	"time"

	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ResourceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    string    `json:"capacity"`
	Players     int       `json:"players"`
	HourlyRate  string    `json:"hourlyRate"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AvailabilityResponse struct {
	ResourceID uuid.UUID `json:"resourceId"`
	Date       string    `json:"date"`
	Booked     []string  `json:"booked"`
	Free       []string  `json:"free"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromResourceView(v *queries.ResourceView) *ResourceResponse {
	resp := &ResourceResponse{}
	_ = copier.Copy(resp, v)
	return resp
}

func FromResourceViews(vs []*queries.ResourceView) []*ResourceResponse {
	out := make([]*ResourceResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromResourceView(v))
	}
	return out
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	resp := &AvailabilityResponse{}
	_ = copier.CopyWithOption(resp, v, copier.Option{DeepCopy: true})
	return resp
}
