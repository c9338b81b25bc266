//go:build unit

package reservation_test

import (
	"errors"
	"testing"
	"time"

	"field-rental/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validateCase struct {
	name   string
	mutate func(in *reservation.ValidationInput)
	errIs  error
	start  int
	end    int
}

func TestValidate(t *testing.T) {
	today := reservation.NewBookingDate(2025, time.March, 10)

	base := func() reservation.ValidationInput {
		return reservation.ValidationInput{
			Today:    today,
			Date:     today.AddDays(1),
			Selected: []int{14, 16},
			Booked:   reservation.EmptyAvailability(today.AddDays(1)),
		}
	}

	runCases := func(t *testing.T, cases []validateCase) {
		t.Helper()
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := base()
				if tc.mutate != nil {
					tc.mutate(&in)
				}
				got, err := reservation.Validate(in)
				if tc.errIs != nil {
					require.ErrorIs(t, err, tc.errIs)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tc.start, got.StartHour())
				assert.Equal(t, tc.end, got.EndHour())
				assert.True(t, got.Date().Equal(in.Date))
			})
		}
	}

	t.Run("date rules", func(t *testing.T) {
		runCases(t, []validateCase{
			{name: "tomorrow", start: 14, end: 16},
			{
				name:   "today is accepted",
				mutate: func(in *reservation.ValidationInput) { in.Date = today },
				start:  14, end: 16,
			},
			{
				name:   "yesterday is rejected",
				mutate: func(in *reservation.ValidationInput) { in.Date = today.AddDays(-1) },
				errIs:  reservation.ErrPastDate,
			},
		})
	})

	t.Run("selection size", func(t *testing.T) {
		runCases(t, []validateCase{
			{
				name:   "nothing selected",
				mutate: func(in *reservation.ValidationInput) { in.Selected = nil },
				errIs:  reservation.ErrIncompleteSelection,
			},
			{
				name:   "single slot",
				mutate: func(in *reservation.ValidationInput) { in.Selected = []int{9} },
				errIs:  reservation.ErrIncompleteSelection,
			},
			{
				name:   "same slot twice counts once",
				mutate: func(in *reservation.ValidationInput) { in.Selected = []int{9, 9} },
				errIs:  reservation.ErrIncompleteSelection,
			},
			{
				name:   "three slots",
				mutate: func(in *reservation.ValidationInput) { in.Selected = []int{9, 10, 11} },
				errIs:  reservation.ErrTooManySlots,
			},
			{
				name:   "out of range hour",
				mutate: func(in *reservation.ValidationInput) { in.Selected = []int{9, 24} },
				errIs:  reservation.ErrInvalidHour,
			},
			{
				name:   "past date wins over bad selection",
				mutate: func(in *reservation.ValidationInput) { in.Date = today.AddDays(-1); in.Selected = []int{1, 2, 3} },
				errIs:  reservation.ErrPastDate,
			},
		})
	})

	t.Run("ordering", func(t *testing.T) {
		runCases(t, []validateCase{
			{
				name:   "unordered input is sorted",
				mutate: func(in *reservation.ValidationInput) { in.Selected = []int{16, 14} },
				start:  14, end: 16,
			},
			{
				name:   "adjacent slots give one hour",
				mutate: func(in *reservation.ValidationInput) { in.Selected = []int{0, 1} },
				start:  0, end: 1,
			},
			{
				name:   "widest interval",
				mutate: func(in *reservation.ValidationInput) { in.Selected = []int{23, 0} },
				start:  0, end: 23,
			},
		})
	})

	t.Run("conflicts", func(t *testing.T) {
		day := today.AddDays(1)
		accepted1517 := reservation.BuildAvailability(day, []reservation.BookedRange{
			{Date: day, StartHour: 15, EndHour: 17, Status: reservation.StatusAccepted},
		})

		runCases(t, []validateCase{
			{
				name:   "overlapping range",
				mutate: func(in *reservation.ValidationInput) { in.Booked = accepted1517 },
				errIs:  reservation.ErrSlotConflict,
			},
			{
				name: "ending where the booking starts",
				mutate: func(in *reservation.ValidationInput) {
					in.Booked = accepted1517
					in.Selected = []int{13, 15}
				},
				start: 13, end: 15,
			},
			{
				name: "starting where the booking ends",
				mutate: func(in *reservation.ValidationInput) {
					in.Booked = accepted1517
					in.Selected = []int{17, 19}
				},
				start: 17, end: 19,
			},
		})
	})
}

func TestValidate_namesFirstConflictingSlot(t *testing.T) {
	today := reservation.NewBookingDate(2025, time.March, 10)
	booked := reservation.BuildAvailability(today, []reservation.BookedRange{
		{Date: today, StartHour: 15, EndHour: 17, Status: reservation.StatusAccepted},
	})

	_, err := reservation.Validate(reservation.ValidationInput{
		Today:    today,
		Date:     today,
		Selected: []int{14, 16},
		Booked:   booked,
	})

	var conflict *reservation.SlotConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, 15, conflict.Slot.Hour())
	assert.Equal(t, "2025-03-10 15:00", conflict.Slot.String())
	assert.ErrorIs(t, err, reservation.ErrSlotConflict)
}
