package resource

import (
	"errors"
	"strings"
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
	ErrInvalidCapacity     = errors.New("invalid capacity")
	ErrNonPositiveRate     = errors.New("hourly rate must be positive")
)

const (
	MaxResourceNameLength = 255
)

// Resource is a bookable field.
type Resource struct {
	id          uuid.UUID
	name        string
	location    string
	capacity    Capacity
	hourlyRate  money.Money
	description string
	imageURL    string
	createdAt   time.Time
	updatedAt   time.Time
}

type Details struct {
	Name        string
	Location    string
	Capacity    Capacity
	HourlyRate  money.Money
	Description string
	ImageURL    string
}

// Patch carries optional updates; nil fields are left as they are.
type Patch struct {
	Name        *string
	Location    *string
	Capacity    *Capacity
	HourlyRate  *money.Money
	Description *string
	ImageURL    *string
}

func NewResource(d Details, now time.Time) (*Resource, error) {
	r := &Resource{
		id:        uuid.New(),
		createdAt: now,
		updatedAt: now,
	}
	if err := r.assign(d); err != nil {
		return nil, err
	}
	return r, nil
}

func ReconstructResource(id uuid.UUID, d Details, createdAt, updatedAt time.Time) *Resource {
	return &Resource{
		id:          id,
		name:        d.Name,
		location:    d.Location,
		capacity:    d.Capacity,
		hourlyRate:  d.HourlyRate,
		description: d.Description,
		imageURL:    d.ImageURL,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Apply validates the patched state before changing anything. Reservations keep the
// charge they were created with, so a new rate only prices future bookings.
func (r *Resource) Apply(p Patch, now time.Time) (bool, error) {
	changed := patch.Changed(p.Name, r.name) ||
		patch.Changed(p.Location, r.location) ||
		patch.Changed(p.Capacity, r.capacity) ||
		patch.Changed(p.Description, r.description) ||
		patch.Changed(p.ImageURL, r.imageURL) ||
		(p.HourlyRate != nil && !p.HourlyRate.Equal(r.hourlyRate))
	if !changed {
		return false, nil
	}

	next := Details{
		Name:        patch.Coalesce(p.Name, r.name),
		Location:    patch.Coalesce(p.Location, r.location),
		Capacity:    patch.Coalesce(p.Capacity, r.capacity),
		HourlyRate:  patch.Coalesce(p.HourlyRate, r.hourlyRate),
		Description: patch.Coalesce(p.Description, r.description),
		ImageURL:    patch.Coalesce(p.ImageURL, r.imageURL),
	}
	if err := r.assign(next); err != nil {
		return false, err
	}
	r.updatedAt = now
	return true, nil
}

func (r *Resource) assign(d Details) error {
	if err := validateResourceName(d.Name); err != nil {
		return err
	}
	if !d.Capacity.IsValid() {
		return ErrInvalidCapacity
	}
	if !d.HourlyRate.IsPositive() {
		return ErrNonPositiveRate
	}

	r.name = strings.TrimSpace(d.Name)
	r.location = strings.TrimSpace(d.Location)
	r.capacity = d.Capacity
	r.hourlyRate = d.HourlyRate
	r.description = strings.TrimSpace(d.Description)
	r.imageURL = strings.TrimSpace(d.ImageURL)
	return nil
}

func validateResourceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func (r *Resource) ID() uuid.UUID {
	return r.id
}

func (r *Resource) Name() string            { return r.name }
func (r *Resource) Location() string        { return r.location }
func (r *Resource) Capacity() Capacity      { return r.capacity }
func (r *Resource) HourlyRate() money.Money { return r.hourlyRate }
func (r *Resource) Description() string     { return r.description }
func (r *Resource) ImageURL() string        { return r.imageURL }
func (r *Resource) CreatedAt() time.Time    { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time    { return r.updatedAt }
