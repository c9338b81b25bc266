//go:build unit || e2e

package builder

import (
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/reservation"
	reqdto "field-rental/internal/handler/dto/request"
	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	UserID       uuid.UUID
	Date         reservation.BookingDate
	StartHour    int
	EndHour      int
	Charge       money.Money
	Status       reservation.Status
	CreatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC()
	return &ReservationBuilder{
		ID:           uuid.New(),
		ResourceID:   uuid.New(),
		ResourceName: "Pitch A",
		UserID:       uuid.New(),
		Date:         reservation.DateOf(now, time.UTC).AddDays(1),
		StartHour:    14,
		EndHour:      16,
		Charge:       money.FromInt(400000),
		Status:       reservation.StatusPending,
		CreatedAt:    now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	iv, err := reservation.NewInterval(b.Date, b.StartHour, b.EndHour)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(b.ID, b.ResourceID, b.UserID, iv, b.Charge, b.Status, b.CreatedAt, b.CreatedAt), nil
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:           b.ID,
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		UserID:       b.UserID,
		Date:         b.Date.String(),
		StartTime:    reservation.FormatHour(b.StartHour),
		EndTime:      reservation.FormatHour(b.EndHour),
		Hours:        b.EndHour - b.StartHour,
		Charge:       b.Charge.String(),
		Status:       b.Status.String(),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ResourceID: b.ResourceID,
		Date:       b.Date.String(),
		Slots:      []string{reservation.FormatHour(b.StartHour), reservation.FormatHour(b.EndHour)},
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithResourceID(id uuid.UUID) *ReservationBuilder {
	b.ResourceID = id
	return b
}

func (b *ReservationBuilder) WithUserID(id uuid.UUID) *ReservationBuilder {
	b.UserID = id
	return b
}

func (b *ReservationBuilder) WithDate(d reservation.BookingDate) *ReservationBuilder {
	b.Date = d
	return b
}

func (b *ReservationBuilder) WithHours(start, end int) *ReservationBuilder {
	b.StartHour, b.EndHour = start, end
	return b
}

func (b *ReservationBuilder) WithStatus(s reservation.Status) *ReservationBuilder {
	b.Status = s
	return b
}

func (b *ReservationBuilder) AsAccepted() *ReservationBuilder {
	b.Status = reservation.StatusAccepted
	return b
}
