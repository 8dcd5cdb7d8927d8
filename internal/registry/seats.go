package registry

import (
	"github.com/chybatronik/busTicketSeed/internal/models"
)

// FreeSeats returns how many seats of a schedule are not yet ticketed
func (r *Registry) FreeSeats(scheduleID int64) int {
	entry, ok := r.schedules[scheduleID]
	if !ok {
		return 0
	}
	return entry.record.Capacity - len(entry.taken)
}

// TakeSeat assigns a random free seat among the first Capacity seats of the
// schedule's bus
func (r *Registry) TakeSeat(src Source, scheduleID int64) (string, bool) {
	entry, ok := r.schedules[scheduleID]
	if !ok || r.FreeSeats(scheduleID) <= 0 {
		return "", false
	}

	free := make([]string, 0, r.FreeSeats(scheduleID))
	for i := 0; i < entry.record.Capacity; i++ {
		seat := models.SeatLabel(i)
		if _, taken := entry.taken[seat]; !taken {
			free = append(free, seat)
		}
	}

	seat := free[src.IntRange(0, len(free)-1)]
	entry.taken[seat] = struct{}{}
	return seat, true
}

// PickScheduleWithSeats draws random schedules until one has at least one free
// seat, giving up after attempts draws
func (r *Registry) PickScheduleWithSeats(src Source, attempts int) (models.ScheduleRecord, bool) {
	ids := r.ids[models.Schedule]
	if len(ids) == 0 {
		return models.ScheduleRecord{}, false
	}

	for i := 0; i < attempts; i++ {
		id := ids[src.IntRange(0, len(ids)-1)]
		if r.FreeSeats(id) > 0 {
			return r.schedules[id].record, true
		}
	}

	// Fall back to a scan so a nearly full dataset still finds the last seats
	start := src.IntRange(0, len(ids)-1)
	for i := range ids {
		id := ids[(start+i)%len(ids)]
		if r.FreeSeats(id) > 0 {
			return r.schedules[id].record, true
		}
	}
	return models.ScheduleRecord{}, false
}
