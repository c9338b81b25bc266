package reservation

import (
	"fmt"

	"field-rental/internal/domain/money"
)

type PriceCalculator interface {
	Price(hourlyRate money.Money, interval ValidatedInterval) money.Money
}

// HourlyRateCalculator charges whole hours at the resource's hourly rate.
type HourlyRateCalculator struct{}

func NewHourlyRateCalculator() *HourlyRateCalculator {
	return &HourlyRateCalculator{}
}

// Price panics on a non-positive duration: Validate never produces one.
func (HourlyRateCalculator) Price(hourlyRate money.Money, interval ValidatedInterval) money.Money {
	hours := interval.Hours()
	if hours <= 0 {
		panic(fmt.Sprintf("reservation: price requested for non-positive duration %d (%s)", hours, interval))
	}
	return hourlyRate.MulInt(int64(hours))
}
