// Package timeline keeps generated timestamps plausible: every value lands
// inside one inclusive window at second granularity, schedules arrive after they
// depart, bookings precede departures, and after-sale events fall between the two.
package timeline

import (
	"fmt"
	"time"
)

// Source is the randomness the temporal rules draw from
type Source interface {
	IntRange(min, max int) int
}

// Window is an inclusive timestamp range
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window truncated to whole seconds
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{
		Start: start.UTC().Truncate(time.Second),
		End:   end.UTC().Truncate(time.Second),
	}
	if !w.End.After(w.Start) {
		return Window{}, fmt.Errorf("window end %s must be after start %s", w.End, w.Start)
	}
	return w, nil
}

// FromDates builds the window covering every second of the calendar days from
// first through last
func FromDates(first, last time.Time) (Window, error) {
	return NewWindow(dayStart(first), dayStart(last).Add(24*time.Hour-time.Second))
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t lies inside the window, bounds included
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Clamp pulls t back to the nearest window boundary
func (w Window) Clamp(t time.Time) time.Time {
	if t.Before(w.Start) {
		return w.Start
	}
	if t.After(w.End) {
		return w.End
	}
	return t
}

// Random returns a uniformly random second inside the window
func (w Window) Random(src Source) time.Time {
	return Between(src, w.Start, w.End)
}

// SpanFrom returns from plus a random whole number of days in [minDays, maxDays],
// clamped to the window end
func (w Window) SpanFrom(src Source, from time.Time, minDays, maxDays int) time.Time {
	days := src.IntRange(minDays, maxDays)
	return w.Clamp(from.AddDate(0, 0, days))
}

// Between returns a uniformly random second in [from, to]. An empty or inverted
// range yields from.
func Between(src Source, from, to time.Time) time.Time {
	span := int(to.Sub(from) / time.Second)
	if span <= 0 {
		return from
	}
	return from.Add(time.Duration(src.IntRange(0, span)) * time.Second)
}
