package generator

import (
	"context"

	"github.com/chybatronik/busTicketSeed/internal/models"
)

// generateAvailableTickets adds unsold tickets on schedules with free seats.
// They take ids from the shared ticket counter and never enter the booked pool.
func (g *Generator) generateAvailableTickets(ctx context.Context) error {
	requested := g.cfg.Counts.AvailableTickets

	var tickets []models.TicketRecord
	for len(tickets) < requested {
		schedule, ok := g.reg.PickScheduleWithSeats(g.faker, scheduleDrawAttempts)
		if !ok {
			break
		}

		id, err := g.reg.NextTicketID()
		if err != nil {
			return err
		}
		seat, _ := g.reg.TakeSeat(g.faker, schedule.ID)

		tickets = append(tickets, models.TicketRecord{
			ID:         id,
			Seat:       seat,
			Status:     models.TicketAvailable,
			ScheduleID: schedule.ID,
		})
	}

	if err := g.writeTickets(tickets, "Available Ticket"); err != nil {
		return err
	}

	g.record(models.Ticket.String(), requested, len(tickets), len(tickets))
	return nil
}
