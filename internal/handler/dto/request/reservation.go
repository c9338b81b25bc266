package request

import (
	"field-rental/internal/domain/reservation"
	"field-rental/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ResourceID uuid.UUID `json:"resource_id" binding:"required"`
	Date       string    `json:"date" binding:"required,bookingdate"`
	// Slots are clock labels such as "14:00". Their count is checked by the booking rules.
	Slots []string `json:"slots" binding:"dive,clockhour"`
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	date, err := reservation.ParseBookingDate(r.Date)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}

	hours := make([]int, 0, len(r.Slots))
	for _, s := range r.Slots {
		h, perr := reservation.ParseHour(s)
		if perr != nil {
			return commands.CreateReservationInput{}, perr
		}
		hours = append(hours, h)
	}

	return commands.CreateReservationInput{
		ResourceID: r.ResourceID,
		Date:       date,
		Slots:      hours,
	}, nil
}

type ListReservationsQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Status string `form:"status" binding:"omitempty,oneof=pending accepted rejected"`
}

func (q ListReservationsQuery) StatusFilter() *reservation.Status {
	if q.Status == "" {
		return nil
	}
	s := reservation.Status(q.Status)
	return &s
}

type AvailabilityQuery struct {
	Date string `form:"date" binding:"required,bookingdate"`
}

func (q AvailabilityQuery) BookingDate() (reservation.BookingDate, error) {
	return reservation.ParseBookingDate(q.Date)
}
