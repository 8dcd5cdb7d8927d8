package generator

import (
	"context"

	"github.com/chybatronik/busTicketSeed/internal/models"
	"github.com/chybatronik/busTicketSeed/internal/sampling"
	"github.com/chybatronik/busTicketSeed/internal/sqlgen"
)

var (
	driverListColumns      = []string{"schedule_id", "driver_id"}
	staffAllocationColumns = []string{"service_transaction_id", "staff_id", "role"}
)

// registerBridgeRow records one bridge row under its 1-based ordinal, since
// bridge rows are keyed by their pair rather than an id column
func (g *Generator) registerBridgeRow(entity models.Entity) error {
	return g.reg.Register(entity, int64(g.reg.Count(entity)+1))
}

func (g *Generator) generateDriverList(ctx context.Context) error {
	table := models.DriverList.String()
	if err := g.out.Banner(table + " (Bridge)"); err != nil {
		return err
	}

	res, err := sampling.UniquePairs(g.faker,
		g.reg.IDs(models.Schedule), g.reg.IDs(models.Driver),
		g.cfg.Counts.DriverListEntries, g.cfg.Generation.PairRetryFactor,
		func(p sampling.Pair) error {
			if err := g.registerBridgeRow(models.DriverList); err != nil {
				return err
			}
			return g.out.Insert(table, driverListColumns, sqlgen.Int(p.Left), sqlgen.Int(p.Right))
		},
	)
	if err != nil {
		return err
	}

	g.record(table, res.Requested, res.Produced, res.Attempts)
	return g.out.Blank()
}

func (g *Generator) generateStaffAllocations(ctx context.Context) error {
	table := models.StaffAllocation.String()
	if err := g.out.Banner(table + " (Bridge)"); err != nil {
		return err
	}

	res, err := sampling.UniquePairs(g.faker,
		g.reg.IDs(models.ServiceDetails), g.reg.IDs(models.Staff),
		g.cfg.Counts.StaffAllocations, g.cfg.Generation.PairRetryFactor,
		func(p sampling.Pair) error {
			if err := g.registerBridgeRow(models.StaffAllocation); err != nil {
				return err
			}
			return g.out.Insert(table, staffAllocationColumns,
				sqlgen.Int(p.Left), sqlgen.Int(p.Right), sqlgen.Text(g.pick(models.AllocationRoles)))
		},
	)
	if err != nil {
		return err
	}

	g.record(table, res.Requested, res.Produced, res.Attempts)
	return g.out.Blank()
}
