package reservation

// BookedRange is the slice of a stored reservation the availability index needs.
type BookedRange struct {
	Date      BookingDate
	StartHour int
	EndHour   int
	Status    Status
}

// Availability is the set of booked hourly slots of one resource on one date.
type Availability struct {
	date   BookingDate
	booked [HoursPerDay]bool
}

func EmptyAvailability(date BookingDate) Availability {
	return Availability{date: date}
}

// BuildAvailability expands every active range on date into its hourly slots.
// Ranges on other dates and rejected ranges are skipped.
func BuildAvailability(date BookingDate, ranges []BookedRange) Availability {
	a := Availability{date: date}
	for _, r := range ranges {
		if !r.Status.IsActive() || !r.Date.Equal(date) {
			continue
		}
		for h := max(r.StartHour, 0); h < min(r.EndHour, HoursPerDay); h++ {
			a.booked[h] = true
		}
	}
	return a
}

func (a Availability) Date() BookingDate { return a.date }

func (a Availability) IsBooked(hour int) bool {
	if hour < 0 || hour >= HoursPerDay {
		return false
	}
	return a.booked[hour]
}

// Booked returns booked slots in ascending order.
func (a Availability) Booked() []TimeSlot {
	return a.collect(true)
}

func (a Availability) Free() []TimeSlot {
	return a.collect(false)
}

func (a Availability) collect(booked bool) []TimeSlot {
	out := make([]TimeSlot, 0, HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		if a.booked[h] == booked {
			out = append(out, TimeSlot{date: a.date, hour: h})
		}
	}
	return out
}

// FirstConflict returns the earliest booked slot inside interval.
func (a Availability) FirstConflict(interval ValidatedInterval) (TimeSlot, bool) {
	for _, slot := range interval.Slots() {
		if a.booked[slot.hour] {
			return slot, true
		}
	}
	return TimeSlot{}, false
}
