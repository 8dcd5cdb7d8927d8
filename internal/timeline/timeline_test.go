package timeline

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWindow(t *testing.T) Window {
	t.Helper()
	w, err := FromDates(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return w
}

func TestFromDates(t *testing.T) {
	w := testWindow(t)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), w.End)
}

func TestNewWindowRejectsInvertedRange(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewWindow(now, now)
	assert.Error(t, err)

	_, err = NewWindow(now, now.Add(-time.Hour))
	assert.Error(t, err)
}

func TestClampAndContains(t *testing.T) {
	w := testWindow(t)

	tests := []struct {
		name     string
		in       time.Time
		expected time.Time
	}{
		{"before start", w.Start.Add(-time.Hour), w.Start},
		{"after end", w.End.Add(time.Second), w.End},
		{"inside", w.Start.Add(time.Hour), w.Start.Add(time.Hour)},
		{"on boundary", w.End, w.End},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.Clamp(tt.in)
			assert.Equal(t, tt.expected, got)
			assert.True(t, w.Contains(got))
		})
	}
}

func TestRandomStaysInWindow(t *testing.T) {
	w := testWindow(t)
	faker := gofakeit.New(1)

	for i := 0; i < 1000; i++ {
		ts := w.Random(faker)
		assert.True(t, w.Contains(ts))
		assert.Zero(t, ts.Nanosecond())
	}
}

func TestSpanFromClampsToEnd(t *testing.T) {
	w := testWindow(t)
	faker := gofakeit.New(2)

	from := w.End.AddDate(0, 0, -10)
	for i := 0; i < 100; i++ {
		got := w.SpanFrom(faker, from, 30, 90)
		assert.Equal(t, w.End, got)
	}

	early := w.Start
	got := w.SpanFrom(faker, early, 15, 60)
	assert.False(t, got.Before(early.AddDate(0, 0, 15)))
	assert.False(t, got.After(early.AddDate(0, 0, 60)))
}

func TestScheduleTimes(t *testing.T) {
	w := testWindow(t)
	faker := gofakeit.New(3)

	for i := 0; i < 2000; i++ {
		dep, arr := w.ScheduleTimes(faker)
		require.True(t, arr.After(dep))
		assert.True(t, w.Contains(dep))
		assert.True(t, w.Contains(arr))
		assert.LessOrEqual(t, arr.Sub(dep), 8*time.Hour+59*time.Minute)
		assert.GreaterOrEqual(t, arr.Sub(dep), time.Hour)
	}
}

func TestScheduleTimesShortWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w, err := NewWindow(start, start.Add(30*time.Minute))
	require.NoError(t, err)

	dep, arr := w.ScheduleTimes(gofakeit.New(4))
	assert.True(t, arr.After(dep))
	assert.True(t, w.Contains(dep))
	assert.True(t, w.Contains(arr))
}

func TestBookingTime(t *testing.T) {
	w := testWindow(t)
	faker := gofakeit.New(5)

	for i := 0; i < 2000; i++ {
		dep, _ := w.ScheduleTimes(faker)
		booked := w.BookingTime(faker, dep, 1, 90)
		assert.True(t, booked.Before(dep))
		assert.True(t, w.Contains(booked))
	}
}

func TestBookingTimeClampsUnderflow(t *testing.T) {
	w := testWindow(t)

	dep := w.Start.Add(2 * time.Hour)
	booked := w.BookingTime(gofakeit.New(6), dep, 30, 30)
	assert.Equal(t, w.Start.Add(time.Second), booked)
}

func TestEventBetween(t *testing.T) {
	faker := gofakeit.New(7)
	after := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		ev, ok := EventBetween(faker, after, after.Add(72*time.Hour))
		require.True(t, ok)
		assert.True(t, ev.After(after))
		assert.True(t, ev.Before(after.Add(72*time.Hour)))
	}

	ev, ok := EventBetween(faker, after, after.Add(2*time.Second))
	require.True(t, ok)
	assert.Equal(t, after.Add(time.Second), ev)

	_, ok = EventBetween(faker, after, after.Add(time.Second))
	assert.False(t, ok)

	_, ok = EventBetween(faker, after, after)
	assert.False(t, ok)
}
