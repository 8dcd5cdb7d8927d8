// Package registry tracks the identifiers each generation phase assigns and the
// subset of their attributes that dependent phases reuse.
//
// Registration is append-only while an entity's phase runs. Once the scheduler
// seals an entity its identifiers are read-only; the only later mutation is the
// booked-ticket pool shrinking as refunds consume tickets.
package registry

import (
	"time"

	"github.com/chybatronik/busTicketSeed/internal/models"
	"github.com/chybatronik/busTicketSeed/pkg/errors"
)

// Source is the randomness a registry needs to pick references
type Source interface {
	IntRange(min, max int) int
}

// Registry is the process-local identifier and cross-reference store of one run
type Registry struct {
	ids    map[models.Entity][]int64
	sealed map[models.Entity]bool

	buses      map[int64]int
	schedules  map[int64]*scheduleEntry
	campaigns  map[int64]models.CampaignRecord
	promotions []models.PromotionRecord
	bookings   []models.BookingRecord

	booked []models.BookedTicket
	pool   *TicketPool

	nextTicketID int64
}

type scheduleEntry struct {
	record models.ScheduleRecord
	taken  map[string]struct{}
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		ids:          make(map[models.Entity][]int64),
		sealed:       make(map[models.Entity]bool),
		buses:        make(map[int64]int),
		schedules:    make(map[int64]*scheduleEntry),
		campaigns:    make(map[int64]models.CampaignRecord),
		pool:         NewTicketPool(),
		nextTicketID: 1,
	}
}

// Register appends id to the entity's identifier sequence
func (r *Registry) Register(entity models.Entity, id int64) error {
	if r.sealed[entity] {
		return errors.NewRegistrySealedError(entity.String())
	}
	r.ids[entity] = append(r.ids[entity], id)
	return nil
}

// Seal marks entities read-only
func (r *Registry) Seal(entities ...models.Entity) {
	for _, e := range entities {
		r.sealed[e] = true
	}
}

// IsSealed reports whether the entity's phase has completed
func (r *Registry) IsSealed(entity models.Entity) bool {
	return r.sealed[entity]
}

// IDs returns the entity's identifiers in assignment order. The slice must not be modified.
func (r *Registry) IDs(entity models.Entity) []int64 {
	return r.ids[entity]
}

// Count returns how many identifiers the entity has
func (r *Registry) Count(entity models.Entity) int {
	return len(r.ids[entity])
}

// Pick returns a uniformly random identifier of the entity
func (r *Registry) Pick(src Source, entity models.Entity) (int64, error) {
	ids := r.ids[entity]
	if len(ids) == 0 {
		return 0, errors.NewPoolEmptyError(entity.String())
	}
	return ids[src.IntRange(0, len(ids)-1)], nil
}

// AddBus registers a bus together with its seat capacity
func (r *Registry) AddBus(id int64, capacity int) error {
	if err := r.Register(models.Bus, id); err != nil {
		return err
	}
	r.buses[id] = capacity
	return nil
}

// BusCapacity returns the seat capacity of a registered bus
func (r *Registry) BusCapacity(id int64) (int, bool) {
	capacity, ok := r.buses[id]
	return capacity, ok
}

// AddSchedule registers a schedule together with its timing, price and seat
// capacity. Tickets on the schedule never exceed s.Capacity.
func (r *Registry) AddSchedule(s models.ScheduleRecord) error {
	if err := r.Register(models.Schedule, s.ID); err != nil {
		return err
	}
	r.schedules[s.ID] = &scheduleEntry{record: s, taken: make(map[string]struct{})}
	return nil
}

// AddCampaign registers a campaign together with its running window
func (r *Registry) AddCampaign(c models.CampaignRecord) error {
	if err := r.Register(models.Campaign, c.ID); err != nil {
		return err
	}
	r.campaigns[c.ID] = c
	return nil
}

// Campaign returns the cached window of a campaign
func (r *Registry) Campaign(id int64) (models.CampaignRecord, bool) {
	c, ok := r.campaigns[id]
	return c, ok
}

// AddPromotion registers a promotion together with its validity and discount
func (r *Registry) AddPromotion(p models.PromotionRecord) error {
	if err := r.Register(models.Promotion, p.ID); err != nil {
		return err
	}
	r.promotions = append(r.promotions, p)
	return nil
}

// PromotionsValidAt returns the promotions whose validity window contains t
func (r *Registry) PromotionsValidAt(t time.Time) []models.PromotionRecord {
	var valid []models.PromotionRecord
	for _, p := range r.promotions {
		if p.ValidAt(t) {
			valid = append(valid, p)
		}
	}
	return valid
}

// AddBooking registers a booking header
func (r *Registry) AddBooking(b models.BookingRecord) error {
	if err := r.Register(models.Booking, b.ID); err != nil {
		return err
	}
	r.bookings = append(r.bookings, b)
	return nil
}

// Bookings returns every registered booking in assignment order
func (r *Registry) Bookings() []models.BookingRecord {
	return r.bookings
}

// NextTicketID hands out the next value of the global ticket counter
func (r *Registry) NextTicketID() (int64, error) {
	if r.sealed[models.Ticket] {
		return 0, errors.NewRegistrySealedError(models.Ticket.String())
	}
	id := r.nextTicketID
	r.nextTicketID++
	r.ids[models.Ticket] = append(r.ids[models.Ticket], id)
	return id, nil
}

// AddBookedTicket records a ticket created by the booking flow and makes it
// eligible for a refund or an extension
func (r *Registry) AddBookedTicket(t models.BookedTicket) {
	r.booked = append(r.booked, t)
	r.pool.Add(t)
}

// BookedTickets returns every ticket created by the booking flow, including
// those later consumed by refunds
func (r *Registry) BookedTickets() []models.BookedTicket {
	return r.booked
}

// Pool returns the booked-ticket pool
func (r *Registry) Pool() *TicketPool {
	return r.pool
}
