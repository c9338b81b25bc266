package reservation

import (
	"time"

	"field-rental/internal/pkg/clock"

	"github.com/google/uuid"
)

// Factory validates a raw selection, prices it and builds a pending reservation.
type Factory struct {
	services *Services
	location *time.Location
}

func NewFactory(services *Services, location *time.Location) *Factory {
	if location == nil {
		location = time.UTC
	}
	return &Factory{
		services: services,
		location: location,
	}
}

func (f *Factory) Clock() clock.Clock { return f.services.Clock }

// Today is the current calendar day in the booking time zone.
func (f *Factory) Today() BookingDate {
	return DateOf(f.services.Clock.Now(), f.location)
}

// CreateReservation must be given an availability index read from the live store.
func (f *Factory) CreateReservation(
	res ResourceSpec,
	userID uuid.UUID,
	date BookingDate,
	selected []int,
	booked Availability,
) (*Reservation, error) {
	interval, err := Validate(ValidationInput{
		Today:    f.Today(),
		Date:     date,
		Selected: selected,
		Booked:   booked,
	})
	if err != nil {
		return nil, err
	}

	charge := f.services.PriceCalculator.Price(res.HourlyRate, interval)

	return NewReservation(res.ID, userID, interval, charge, f.services.Clock.Now())
}
