//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"field-rental/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlot(t *testing.T) {
	day := reservation.NewBookingDate(2025, time.March, 10)

	t.Run("construction bounds", func(t *testing.T) {
		for _, h := range []int{0, 23} {
			_, err := reservation.NewTimeSlot(day, h)
			require.NoError(t, err)
		}
		for _, h := range []int{-1, 24} {
			_, err := reservation.NewTimeSlot(day, h)
			require.ErrorIs(t, err, reservation.ErrInvalidHour)
		}
	})

	t.Run("ordering by date then hour", func(t *testing.T) {
		a, _ := reservation.NewTimeSlot(day, 20)
		b, _ := reservation.NewTimeSlot(day.AddDays(1), 1)
		c, _ := reservation.NewTimeSlot(day, 20)

		assert.True(t, a.Before(b))
		assert.Equal(t, 1, b.Compare(a))
		assert.True(t, a.Equal(c))
	})

	t.Run("adjacency", func(t *testing.T) {
		fourteen, _ := reservation.NewTimeSlot(day, 14)
		fifteen, _ := reservation.NewTimeSlot(day, 15)
		sixteen, _ := reservation.NewTimeSlot(day, 16)
		lastHour, _ := reservation.NewTimeSlot(day, 23)
		midnight, _ := reservation.NewTimeSlot(day.AddDays(1), 0)

		assert.True(t, fifteen.Follows(fourteen))
		assert.False(t, sixteen.Follows(fourteen))
		assert.False(t, fourteen.Follows(fifteen))
		assert.True(t, midnight.Follows(lastHour))
		assert.True(t, lastHour.Next().Equal(midnight))
	})

	t.Run("labels", func(t *testing.T) {
		s, _ := reservation.NewTimeSlot(day, 9)
		assert.Equal(t, "09:00", s.ClockLabel())
		assert.Equal(t, "2025-03-10 09:00", s.String())
	})
}

func TestParseHour(t *testing.T) {
	cases := []struct {
		in    string
		want  int
		errIs error
	}{
		{in: "14:00", want: 14},
		{in: "14:00:00", want: 14},
		{in: "07", want: 7},
		{in: "00:00", want: 0},
		{in: "14:30", errIs: reservation.ErrInvalidHour},
		{in: "24:00", errIs: reservation.ErrInvalidHour},
		{in: "noon", errIs: reservation.ErrInvalidHour},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := reservation.ParseHour(tc.in)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBookingDate(t *testing.T) {
	d, err := reservation.ParseBookingDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", d.String())

	_, err = reservation.ParseBookingDate("10/03/2025")
	require.ErrorIs(t, err, reservation.ErrInvalidDate)

	hcm, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	lateUTC := time.Date(2025, time.March, 10, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-11", reservation.DateOf(lateUTC, hcm).String())
	assert.Equal(t, "2025-03-10", reservation.DateOf(lateUTC, time.UTC).String())
}

func TestValidatedInterval(t *testing.T) {
	day := reservation.NewBookingDate(2025, time.March, 10)

	i, err := reservation.NewInterval(day, 14, 16)
	require.NoError(t, err)
	assert.Equal(t, 2, i.Hours())
	assert.Equal(t, 2*time.Hour, i.Duration())
	require.Len(t, i.Slots(), 2)
	assert.Equal(t, 14, i.Slots()[0].Hour())
	assert.Equal(t, 15, i.Slots()[1].Hour())
	assert.Equal(t, "2025-03-10 14:00-16:00", i.String())

	other, _ := reservation.NewInterval(day, 15, 17)
	touching, _ := reservation.NewInterval(day, 16, 18)
	assert.True(t, i.Overlaps(other))
	assert.False(t, i.Overlaps(touching))

	_, err = reservation.NewInterval(day, 16, 16)
	require.ErrorIs(t, err, reservation.ErrInvalidInterval)
	_, err = reservation.NewInterval(day, 22, 24)
	require.ErrorIs(t, err, reservation.ErrInvalidHour)
}
