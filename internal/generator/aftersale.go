package generator

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chybatronik/busTicketSeed/internal/models"
	"github.com/chybatronik/busTicketSeed/internal/sampling"
	"github.com/chybatronik/busTicketSeed/internal/sqlgen"
	"github.com/chybatronik/busTicketSeed/internal/timeline"
)

var (
	refundColumns    = []string{"refund_id", "refund_date", "amount", "refund_method", "ticket_id"}
	extensionColumns = []string{"extension_id", "extension_date", "extension_fee", "payment_method", "ticket_id"}
)

// eligibleTickets returns the pooled tickets that leave room for an event
// strictly between booking and departure
func (g *Generator) eligibleTickets(table string) []models.BookedTicket {
	pooled := g.reg.Pool().Snapshot()
	eligible := pooled[:0]
	for _, t := range pooled {
		if t.Departure.Sub(t.BookedAt).Seconds() >= 2 {
			eligible = append(eligible, t)
		}
	}
	if skipped := len(pooled) - len(eligible); skipped > 0 {
		g.logger.WithTable(table).Debug("Tickets without room between booking and departure",
			"skipped", skipped)
	}
	return eligible
}

// generateRefunds refunds tickets drawn without replacement from the pool and
// removes them from it, so they can no longer be extended
func (g *Generator) generateRefunds(ctx context.Context) error {
	table := models.Refund.String()
	if err := g.out.Banner(table); err != nil {
		return err
	}

	requested := g.cfg.Counts.Refunds
	drawn, res := sampling.WithoutReplacement(g.faker, g.eligibleTickets(table), requested)

	produced := 0
	for _, t := range drawn {
		at, ok := timeline.EventBetween(g.faker, t.BookedAt, t.Departure)
		if !ok {
			continue
		}

		share := decimal.NewFromFloat(g.faker.Float64Range(0.5, 1.0))
		refund := models.RefundRecord{
			ID:       int64(produced + 1),
			RefundAt: at,
			Amount:   models.RoundMoney(t.Price.Mul(share)),
			Method:   g.pick(models.PaymentMethods),
			TicketID: t.TicketID,
		}
		if err := g.reg.Register(models.Refund, refund.ID); err != nil {
			return err
		}

		err := g.out.Insert(table, refundColumns,
			sqlgen.Int(refund.ID),
			sqlgen.Time(refund.RefundAt),
			sqlgen.Money(refund.Amount),
			sqlgen.Text(refund.Method),
			sqlgen.Int(refund.TicketID),
		)
		if err != nil {
			return err
		}

		g.reg.Pool().Remove(t.TicketID)
		produced++
	}

	g.record(table, requested, produced, res.Attempts)
	return g.out.Blank()
}

// generateExtensions extends tickets drawn without replacement from what the
// refunds left in the pool
func (g *Generator) generateExtensions(ctx context.Context) error {
	table := models.Extension.String()
	if err := g.out.Banner(table); err != nil {
		return err
	}

	requested := g.cfg.Counts.Extensions
	drawn, res := sampling.WithoutReplacement(g.faker, g.eligibleTickets(table), requested)

	produced := 0
	for _, t := range drawn {
		if !g.reg.Pool().Contains(t.TicketID) {
			return fmt.Errorf("ticket %d extended after leaving the pool", t.TicketID)
		}

		at, ok := timeline.EventBetween(g.faker, t.BookedAt, t.Departure)
		if !ok {
			continue
		}

		ext := models.ExtensionRecord{
			ID:         int64(produced + 1),
			ExtendedAt: at,
			Fee:        g.money(5, 30),
			Method:     g.pick(models.PaymentMethods),
			TicketID:   t.TicketID,
		}
		if err := g.reg.Register(models.Extension, ext.ID); err != nil {
			return err
		}

		err := g.out.Insert(table, extensionColumns,
			sqlgen.Int(ext.ID),
			sqlgen.Time(ext.ExtendedAt),
			sqlgen.Money(ext.Fee),
			sqlgen.Text(ext.Method),
			sqlgen.Int(ext.TicketID),
		)
		if err != nil {
			return err
		}
		produced++
	}

	g.record(table, requested, produced, res.Attempts)
	return g.out.Blank()
}
