package reservation

import (
	"errors"
	"fmt"
	"slices"
)

// SelectionSize is the number of distinct slots a selection must contain.
const SelectionSize = 2

var (
	ErrPastDate            = errors.New("date is before today")
	ErrIncompleteSelection = errors.New("exactly two distinct slots must be selected")
	ErrTooManySlots        = errors.New("at most two slots may be selected")
	ErrSlotConflict        = errors.New("slot is already booked")
)

// SlotConflictError names the first booked slot inside the requested interval.
type SlotConflictError struct {
	Slot TimeSlot
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot %s is already booked", e.Slot)
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

type ValidationInput struct {
	Today    BookingDate
	Date     BookingDate
	Selected []int
	Booked   Availability
}

// Validate turns a raw two-slot selection into an ordered interval.
// Checks run in a fixed order: past date, selection size, ordering, availability.
func Validate(in ValidationInput) (ValidatedInterval, error) {
	if in.Date.Before(in.Today) {
		return ValidatedInterval{}, ErrPastDate
	}

	hours, err := distinctHours(in.Selected)
	if err != nil {
		return ValidatedInterval{}, err
	}
	switch {
	case len(hours) < SelectionSize:
		return ValidatedInterval{}, ErrIncompleteSelection
	case len(hours) > SelectionSize:
		return ValidatedInterval{}, ErrTooManySlots
	}

	slices.Sort(hours)
	interval := ValidatedInterval{date: in.Date, start: hours[0], end: hours[1]}

	if slot, conflict := in.Booked.FirstConflict(interval); conflict {
		return ValidatedInterval{}, &SlotConflictError{Slot: slot}
	}
	return interval, nil
}

func distinctHours(selected []int) ([]int, error) {
	seen := make(map[int]struct{}, len(selected))
	out := make([]int, 0, len(selected))
	for _, h := range selected {
		if h < 0 || h >= HoursPerDay {
			return nil, ErrInvalidHour
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out, nil
}
