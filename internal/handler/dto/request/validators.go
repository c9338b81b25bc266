package request

import (
	"field-rental/internal/domain/reservation"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the booking-specific tags to the validator gin binds with.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("clockhour", validateClockHour); err != nil {
		return err
	}
	return v.RegisterValidation("bookingdate", validateBookingDate)
}

func validateClockHour(fl validator.FieldLevel) bool {
	_, err := reservation.ParseHour(fl.Field().String())
	return err == nil
}

func validateBookingDate(fl validator.FieldLevel) bool {
	_, err := reservation.ParseBookingDate(fl.Field().String())
	return err == nil
}
