package generator

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chybatronik/busTicketSeed/internal/models"
	"github.com/chybatronik/busTicketSeed/internal/sampling"
	"github.com/chybatronik/busTicketSeed/internal/sqlgen"
)

// scheduleDrawAttempts bounds the random draws for a schedule with free seats
// before the registry falls back to a scan
const scheduleDrawAttempts = 20

var (
	bookingColumns        = []string{"booking_id", "booking_date", "total_amount", "member_id", "payment_id"}
	ticketColumns         = []string{"ticket_id", "seat_number", "status", "schedule_id", "promotion_id"}
	bookingDetailsColumns = []string{"booking_id", "ticket_id"}
)

// generateBookings runs the booking chain: each booking consumes one payment,
// anchors on a schedule with free seats and creates its tickets on it. Booking,
// Ticket and BookingDetails rows are written as three sections once every
// booking is complete, because a booking's total is only known after its tickets.
func (g *Generator) generateBookings(ctx context.Context) error {
	requested := g.cfg.Counts.Bookings
	payments := g.reg.IDs(models.Payment)

	target := requested
	if len(payments) < target {
		g.warn(models.Booking.String(),
			fmt.Sprintf("only %d payments for %d bookings", len(payments), requested))
		target = len(payments)
	}
	chosen, _ := sampling.WithoutReplacement(g.faker, payments, target)

	var tickets []models.TicketRecord
	ticketsRequested := 0

	for i, paymentID := range chosen {
		if i%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		schedule, ok := g.reg.PickScheduleWithSeats(g.faker, scheduleDrawAttempts)
		if !ok {
			g.warn(models.Booking.String(), "every schedule is fully booked")
			break
		}

		memberID, err := g.reg.Pick(g.faker, models.Member)
		if err != nil {
			return err
		}

		booking := models.BookingRecord{
			ID:        int64(i + 1),
			BookedAt:  g.window.BookingTime(g.faker, schedule.Departure, g.cfg.Booking.MinLeadDays, g.cfg.Booking.MaxLeadDays),
			Total:     decimal.Zero,
			MemberID:  memberID,
			PaymentID: paymentID,
		}

		count := g.faker.IntRange(g.cfg.Booking.MinTickets, g.cfg.Booking.MaxTickets)
		ticketsRequested += count
		if free := g.reg.FreeSeats(schedule.ID); count > free {
			count = free
		}

		for j := 0; j < count; j++ {
			ticket, price, err := g.bookTicket(schedule, booking)
			if err != nil {
				return err
			}
			booking.Total = booking.Total.Add(price)
			tickets = append(tickets, ticket)
		}

		if err := g.reg.AddBooking(booking); err != nil {
			return err
		}
	}

	if err := g.writeBookings(); err != nil {
		return err
	}
	if err := g.writeTickets(tickets, "Ticket"); err != nil {
		return err
	}
	if err := g.writeBookingDetails(); err != nil {
		return err
	}

	bookings := len(g.reg.Bookings())
	g.record(models.Booking.String(), requested, bookings, bookings)
	g.record(models.Ticket.String(), ticketsRequested, len(tickets), len(tickets))
	g.record(models.BookingDetails.String(), ticketsRequested, len(tickets), len(tickets))
	return nil
}

// bookTicket creates one booked ticket of the booking and returns its
// effective price
func (g *Generator) bookTicket(schedule models.ScheduleRecord, booking models.BookingRecord) (models.TicketRecord, decimal.Decimal, error) {
	id, err := g.reg.NextTicketID()
	if err != nil {
		return models.TicketRecord{}, decimal.Zero, err
	}

	seat, ok := g.reg.TakeSeat(g.faker, schedule.ID)
	if !ok {
		return models.TicketRecord{}, decimal.Zero, fmt.Errorf("schedule %d has no free seat", schedule.ID)
	}

	ticket := models.TicketRecord{
		ID:         id,
		Seat:       seat,
		Status:     models.TicketBooked,
		ScheduleID: schedule.ID,
	}

	price := models.RoundMoney(schedule.BasePrice)
	if promo, ok := g.promotionFor(booking); ok {
		promoID := promo.ID
		ticket.PromotionID = &promoID
		price = promo.Apply(schedule.BasePrice)
	}

	g.reg.AddBookedTicket(models.BookedTicket{
		TicketID:   id,
		BookingID:  booking.ID,
		ScheduleID: schedule.ID,
		BookedAt:   booking.BookedAt,
		Departure:  schedule.Departure,
		Price:      price,
	})
	return ticket, price, nil
}

// promotionFor attaches a promotion with the configured probability, choosing
// among those valid when the booking is made
func (g *Generator) promotionFor(booking models.BookingRecord) (models.PromotionRecord, bool) {
	if g.faker.Float64() >= g.cfg.Booking.PromotionRate {
		return models.PromotionRecord{}, false
	}
	valid := g.reg.PromotionsValidAt(booking.BookedAt)
	if len(valid) == 0 {
		return models.PromotionRecord{}, false
	}
	return valid[g.faker.IntRange(0, len(valid)-1)], true
}

func (g *Generator) writeBookings() error {
	table := models.Booking.String()
	if err := g.out.Banner(table); err != nil {
		return err
	}
	for _, b := range g.reg.Bookings() {
		err := g.out.Insert(table, bookingColumns,
			sqlgen.Int(b.ID),
			sqlgen.Time(b.BookedAt),
			sqlgen.Money(b.Total),
			sqlgen.Int(b.MemberID),
			sqlgen.Int(b.PaymentID),
		)
		if err != nil {
			return err
		}
	}
	return g.out.Blank()
}

func (g *Generator) writeTickets(tickets []models.TicketRecord, title string) error {
	table := models.Ticket.String()
	if err := g.out.Banner(title); err != nil {
		return err
	}
	for _, t := range tickets {
		err := g.out.Insert(table, ticketColumns,
			sqlgen.Int(t.ID),
			sqlgen.Text(t.Seat),
			sqlgen.Text(string(t.Status)),
			sqlgen.Int(t.ScheduleID),
			sqlgen.NullableInt(t.PromotionID),
		)
		if err != nil {
			return err
		}
	}
	return g.out.Blank()
}

func (g *Generator) writeBookingDetails() error {
	table := models.BookingDetails.String()
	if err := g.out.Banner(table); err != nil {
		return err
	}
	for _, t := range g.reg.BookedTickets() {
		if err := g.out.Insert(table, bookingDetailsColumns, sqlgen.Int(t.BookingID), sqlgen.Int(t.TicketID)); err != nil {
			return err
		}
	}
	return g.out.Blank()
}
