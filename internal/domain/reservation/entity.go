package reservation

import (
	"errors"
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrAlreadyFinalized = errors.New("reservation is already finalized")
	ErrInvalidStatus    = errors.New("invalid reservation status")
	ErrInvalidCharge    = errors.New("charge must be positive")
	ErrMissingUser      = errors.New("reservation requires a user")
	ErrMissingResource  = errors.New("reservation requires a resource")
)

// ResourceSpec is what a reservation needs to know about the booked resource.
type ResourceSpec struct {
	ID         uuid.UUID
	HourlyRate money.Money
}

type Services struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

type Reservation struct {
	id         uuid.UUID
	resourceID uuid.UUID
	userID     uuid.UUID
	interval   ValidatedInterval
	charge     money.Money
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReservation(
	resourceID, userID uuid.UUID,
	interval ValidatedInterval,
	charge money.Money,
	now time.Time,
) (*Reservation, error) {
	if resourceID == uuid.Nil {
		return nil, ErrMissingResource
	}
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	if interval.Hours() <= 0 {
		return nil, ErrInvalidInterval
	}
	if !charge.IsPositive() {
		return nil, ErrInvalidCharge
	}

	return &Reservation{
		id:         uuid.New(),
		resourceID: resourceID,
		userID:     userID,
		interval:   interval,
		charge:     charge,
		status:     StatusPending,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructReservation(
	id, resourceID, userID uuid.UUID,
	interval ValidatedInterval,
	charge money.Money,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		resourceID: resourceID,
		userID:     userID,
		interval:   interval,
		charge:     charge,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Reservation) Accept(now time.Time) error {
	return r.transition(StatusAccepted, now)
}

func (r *Reservation) Reject(now time.Time) error {
	return r.transition(StatusRejected, now)
}

func (r *Reservation) transition(to Status, now time.Time) error {
	if r.status != StatusPending {
		return ErrAlreadyFinalized
	}
	r.status = to
	r.updatedAt = now
	return nil
}

func (r *Reservation) IsActive() bool { return r.status.IsActive() }

func (r *Reservation) BookedRange() BookedRange {
	return BookedRange{
		Date:      r.interval.Date(),
		StartHour: r.interval.StartHour(),
		EndHour:   r.interval.EndHour(),
		Status:    r.status,
	}
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) ResourceID() uuid.UUID       { return r.resourceID }
func (r *Reservation) UserID() uuid.UUID           { return r.userID }
func (r *Reservation) Interval() ValidatedInterval { return r.interval }
func (r *Reservation) Date() BookingDate           { return r.interval.Date() }
func (r *Reservation) Charge() money.Money         { return r.charge }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }
