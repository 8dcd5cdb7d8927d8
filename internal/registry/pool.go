package registry

import (
	"github.com/chybatronik/busTicketSeed/internal/models"
)

// TicketPool is the working set of booked tickets still eligible for a refund
// or an extension. It keeps insertion order so runs stay reproducible per seed.
type TicketPool struct {
	tickets []models.BookedTicket
	index   map[int64]int
}

// NewTicketPool creates an empty pool
func NewTicketPool() *TicketPool {
	return &TicketPool{index: make(map[int64]int)}
}

// Add puts a ticket into the pool; adding a ticket twice is a no-op
func (p *TicketPool) Add(t models.BookedTicket) {
	if _, ok := p.index[t.TicketID]; ok {
		return
	}
	p.index[t.TicketID] = len(p.tickets)
	p.tickets = append(p.tickets, t)
}

// Remove takes a ticket out of the pool and reports whether it was present
func (p *TicketPool) Remove(ticketID int64) bool {
	i, ok := p.index[ticketID]
	if !ok {
		return false
	}

	copy(p.tickets[i:], p.tickets[i+1:])
	p.tickets = p.tickets[:len(p.tickets)-1]
	delete(p.index, ticketID)
	for j := i; j < len(p.tickets); j++ {
		p.index[p.tickets[j].TicketID] = j
	}
	return true
}

// Contains reports whether the ticket is still eligible
func (p *TicketPool) Contains(ticketID int64) bool {
	_, ok := p.index[ticketID]
	return ok
}

// Len returns the number of eligible tickets
func (p *TicketPool) Len() int {
	return len(p.tickets)
}

// Snapshot returns a copy of the eligible tickets in insertion order
func (p *TicketPool) Snapshot() []models.BookedTicket {
	out := make([]models.BookedTicket, len(p.tickets))
	copy(out, p.tickets)
	return out
}
