package converter

import (
	"fmt"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/reservation"
	"field-rental/internal/infra/query"
	"field-rental/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func ReservationToInfra(res *reservation.Reservation) query.Reservations {
	iv := res.Interval()
	return query.Reservations{
		ID:          res.ID(),
		ResourceID:  res.ResourceID(),
		UserID:      res.UserID(),
		BookingDate: DateToInfra(iv.Date()),
		StartHour:   int16(iv.StartHour()),
		EndHour:     int16(iv.EndHour()),
		Charge:      MoneyToInfra(res.Charge()),
		Status:      res.Status().String(),
		CreatedAt:   pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationFromInfra(row query.Reservations) (*reservation.Reservation, error) {
	iv, err := reservation.NewInterval(DateFromInfra(row.BookingDate), int(row.StartHour), int(row.EndHour))
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", row.ID, err)
	}
	charge, err := MoneyFromInfra(row.Charge)
	if err != nil {
		return nil, fmt.Errorf("reservation %s charge: %w", row.ID, err)
	}
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("reservation %s: %w", row.ID, err)
	}
	return reservation.ReconstructReservation(
		row.ID,
		row.ResourceID,
		row.UserID,
		iv,
		charge,
		status,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func BookedRangeFromInfra(row query.ListActiveRangesRow) (reservation.BookedRange, error) {
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return reservation.BookedRange{}, err
	}
	return reservation.BookedRange{
		Date:      DateFromInfra(row.BookingDate),
		StartHour: int(row.StartHour),
		EndHour:   int(row.EndHour),
		Status:    status,
	}, nil
}

func DateToInfra(d reservation.BookingDate) pgtype.Date {
	return pgconv.DateToPgtype(d.Time())
}

func DateFromInfra(pd pgtype.Date) reservation.BookingDate {
	t := pgconv.DateFromPgtype(pd)
	return reservation.NewBookingDate(t.Year(), t.Month(), t.Day())
}

func MoneyToInfra(m money.Money) pgtype.Numeric {
	return pgconv.NumericFromDecimal(m.Decimal())
}

func MoneyFromInfra(pn pgtype.Numeric) (money.Money, error) {
	d, err := pgconv.DecimalFromNumeric(pn)
	if err != nil {
		return money.Money{}, err
	}
	return money.New(d)
}
