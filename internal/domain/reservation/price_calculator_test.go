//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlyRateCalculator(t *testing.T) {
	calc := reservation.NewHourlyRateCalculator()
	day := reservation.NewBookingDate(2025, time.March, 10)
	rate := money.FromInt(200000)

	t.Run("charges every hour of the interval", func(t *testing.T) {
		interval, err := reservation.NewInterval(day, 14, 16)
		require.NoError(t, err)
		assert.Equal(t, "400000.00", calc.Price(rate, interval).String())
	})

	t.Run("keeps fractional rates exact", func(t *testing.T) {
		fractional, err := money.Parse("12.25")
		require.NoError(t, err)
		interval, _ := reservation.NewInterval(day, 0, 3)
		assert.Equal(t, "36.75", calc.Price(fractional, interval).String())
	})

	t.Run("longer intervals never cost less", func(t *testing.T) {
		prev := money.Zero()
		for end := 1; end < reservation.HoursPerDay; end++ {
			interval, err := reservation.NewInterval(day, 0, end)
			require.NoError(t, err)
			price := calc.Price(rate, interval)
			assert.True(t, prev.LessThan(price), "end=%d", end)
			prev = price
		}
	})

	t.Run("same input same price", func(t *testing.T) {
		interval, _ := reservation.NewInterval(day, 8, 11)
		assert.True(t, calc.Price(rate, interval).Equal(calc.Price(rate, interval)))
	})

	t.Run("zero duration panics", func(t *testing.T) {
		assert.Panics(t, func() {
			calc.Price(rate, reservation.ValidatedInterval{})
		})
	})
}
