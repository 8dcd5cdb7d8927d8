package timeline

import "time"

const (
	minTripHours   = 1
	maxTripHours   = 8
	maxTripMinutes = 59

	secondsPerDay = 24 * 60 * 60
)

// TripDuration returns a random travel time of 1 to 8 hours plus 0 to 59 minutes
func TripDuration(src Source) time.Duration {
	return time.Duration(src.IntRange(minTripHours, maxTripHours))*time.Hour +
		time.Duration(src.IntRange(0, maxTripMinutes))*time.Minute
}

// ScheduleTimes draws a departure and an arrival that both fit in the window.
//
// The duration is drawn first and the departure is sampled from
// [Start+1min, End-duration], so arrival never needs clamping and no resample
// loop is needed.
func (w Window) ScheduleTimes(src Source) (departure, arrival time.Time) {
	duration := TripDuration(src)

	earliest := w.Start.Add(time.Minute)
	latest := w.End.Add(-duration)
	if latest.Before(earliest) {
		// Window shorter than the trip: shrink the trip to what fits
		departure = earliest
		arrival = w.End
		if !arrival.After(departure) {
			departure = w.Start
		}
		return departure, arrival
	}

	departure = Between(src, earliest, latest)
	return departure, departure.Add(duration)
}

// BookingTime returns departure minus a lead of minDays to maxDays plus a random
// part of a day. A result before the window start is clamped to one second
// after it, which still precedes any departure ScheduleTimes produces.
func (w Window) BookingTime(src Source, departure time.Time, minDays, maxDays int) time.Time {
	lead := time.Duration(src.IntRange(minDays, maxDays))*24*time.Hour +
		time.Duration(src.IntRange(0, secondsPerDay-1))*time.Second

	booked := departure.Add(-lead)
	floor := w.Start.Add(time.Second)
	if booked.Before(floor) {
		booked = floor
	}
	if !booked.Before(departure) {
		booked = departure.Add(-time.Second)
	}
	return booked
}

// EventBetween returns a timestamp strictly between after and before, offset
// by a whole number of seconds. It reports false when the gap is under two
// seconds and no such timestamp exists.
func EventBetween(src Source, after, before time.Time) (time.Time, bool) {
	gap := int(before.Sub(after) / time.Second)
	if gap < 2 {
		return time.Time{}, false
	}
	return after.Add(time.Duration(src.IntRange(1, gap-1)) * time.Second), true
}
