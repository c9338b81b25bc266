package reservation

import (
	"errors"
	"fmt"
	"time"
)

const (
	HoursPerDay = 24

	dateLayout = "2006-01-02"
)

var (
	ErrInvalidDate     = errors.New("invalid booking date")
	ErrInvalidHour     = errors.New("hour must be between 0 and 23")
	ErrInvalidInterval = errors.New("interval end must be after start")
)

// BookingDate is a calendar day without a time-of-day component.
type BookingDate struct {
	t time.Time // midnight UTC
}

func NewBookingDate(year int, month time.Month, day int) BookingDate {
	return BookingDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseBookingDate(s string) (BookingDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return BookingDate{}, ErrInvalidDate
	}
	return NewBookingDate(t.Date()), nil
}

// DateOf returns the calendar day t falls on in loc.
func DateOf(t time.Time, loc *time.Location) BookingDate {
	if loc == nil {
		loc = time.UTC
	}
	return NewBookingDate(t.In(loc).Date())
}

func (d BookingDate) Time() time.Time               { return d.t }
func (d BookingDate) IsZero() bool                  { return d.t.IsZero() }
func (d BookingDate) Before(other BookingDate) bool { return d.t.Before(other.t) }
func (d BookingDate) After(other BookingDate) bool  { return d.t.After(other.t) }
func (d BookingDate) Equal(other BookingDate) bool  { return d.t.Equal(other.t) }
func (d BookingDate) AddDays(n int) BookingDate     { return BookingDate{t: d.t.AddDate(0, 0, n)} }
func (d BookingDate) String() string                { return d.t.Format(dateLayout) }

// TimeSlot is one hour-aligned hour of one calendar day.
type TimeSlot struct {
	date BookingDate
	hour int
}

func NewTimeSlot(date BookingDate, hour int) (TimeSlot, error) {
	if hour < 0 || hour >= HoursPerDay {
		return TimeSlot{}, ErrInvalidHour
	}
	return TimeSlot{date: date, hour: hour}, nil
}

func (s TimeSlot) Date() BookingDate { return s.date }
func (s TimeSlot) Hour() int         { return s.hour }

func (s TimeSlot) Start() time.Time {
	return s.date.t.Add(time.Duration(s.hour) * time.Hour)
}

// Compare orders by date, then hour.
func (s TimeSlot) Compare(other TimeSlot) int {
	return s.Start().Compare(other.Start())
}

func (s TimeSlot) Before(other TimeSlot) bool { return s.Compare(other) < 0 }
func (s TimeSlot) Equal(other TimeSlot) bool  { return s.Compare(other) == 0 }

// Follows reports whether s starts exactly one hour after prev, across midnight too.
func (s TimeSlot) Follows(prev TimeSlot) bool {
	return s.Start().Equal(prev.Start().Add(time.Hour))
}

func (s TimeSlot) Next() TimeSlot {
	if s.hour == HoursPerDay-1 {
		return TimeSlot{date: s.date.AddDays(1), hour: 0}
	}
	return TimeSlot{date: s.date, hour: s.hour + 1}
}

func (s TimeSlot) ClockLabel() string {
	return FormatHour(s.hour)
}

func (s TimeSlot) String() string {
	return s.date.String() + " " + s.ClockLabel()
}

func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ParseHour accepts "HH", "HH:00" or "HH:00:00".
func ParseHour(s string) (int, error) {
	for _, layout := range []string{"15:04:05", "15:04", "15"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Minute() != 0 || t.Second() != 0 {
			return 0, ErrInvalidHour
		}
		return t.Hour(), nil
	}
	return 0, ErrInvalidHour
}

// ValidatedInterval is the half-open hour range [start, end) on one date.
type ValidatedInterval struct {
	date  BookingDate
	start int
	end   int
}

// NewInterval is used when reconstructing stored reservations; new selections go through Validate.
func NewInterval(date BookingDate, startHour, endHour int) (ValidatedInterval, error) {
	if startHour < 0 || startHour >= HoursPerDay || endHour < 0 || endHour >= HoursPerDay {
		return ValidatedInterval{}, ErrInvalidHour
	}
	if endHour <= startHour {
		return ValidatedInterval{}, ErrInvalidInterval
	}
	return ValidatedInterval{date: date, start: startHour, end: endHour}, nil
}

func (i ValidatedInterval) Date() BookingDate { return i.date }
func (i ValidatedInterval) StartHour() int    { return i.start }
func (i ValidatedInterval) EndHour() int      { return i.end }
func (i ValidatedInterval) Hours() int        { return i.end - i.start }

func (i ValidatedInterval) StartSlot() TimeSlot { return TimeSlot{date: i.date, hour: i.start} }
func (i ValidatedInterval) EndSlot() TimeSlot   { return TimeSlot{date: i.date, hour: i.end} }

func (i ValidatedInterval) Duration() time.Duration {
	return time.Duration(i.Hours()) * time.Hour
}

// Slots expands the interval into its hourly slots; the end boundary is excluded.
func (i ValidatedInterval) Slots() []TimeSlot {
	slots := make([]TimeSlot, 0, i.Hours())
	for h := i.start; h < i.end; h++ {
		slots = append(slots, TimeSlot{date: i.date, hour: h})
	}
	return slots
}

func (i ValidatedInterval) Overlaps(other ValidatedInterval) bool {
	return i.date.Equal(other.date) && i.start < other.end && other.start < i.end
}

func (i ValidatedInterval) String() string {
	return fmt.Sprintf("%s %s-%s", i.date, FormatHour(i.start), FormatHour(i.end))
}
