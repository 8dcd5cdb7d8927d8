// Package generator produces the bus-ticketing dataset.
//
// Each table is a phase of the dependency-ordered pipeline. Simple tables are
// declared as tableSpec descriptors and written by one emitter; the booking
// chain, after-sale events and filler tickets have their own flows because they
// read and mutate the registry's side tables.
package generator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chybatronik/busTicketSeed/internal/config"
	"github.com/chybatronik/busTicketSeed/internal/logging"
	"github.com/chybatronik/busTicketSeed/internal/models"
	"github.com/chybatronik/busTicketSeed/internal/pipeline"
	"github.com/chybatronik/busTicketSeed/internal/registry"
	"github.com/chybatronik/busTicketSeed/internal/sqlgen"
	"github.com/chybatronik/busTicketSeed/internal/timeline"
	"github.com/chybatronik/busTicketSeed/internal/types"
	"github.com/chybatronik/busTicketSeed/pkg/errors"
)

// Generator owns the state of one generation run
type Generator struct {
	cfg    *config.Config
	faker  *gofakeit.Faker
	window timeline.Window
	reg    *registry.Registry
	out    *sqlgen.Writer
	logger *logging.Logger
	fields *logging.StandardField
	title  cases.Caser
	unique *uniqueValues
	report *types.Report
	seed   int64
	clock  func() time.Time
}

// Option customizes a Generator
type Option func(*Generator)

// WithClock overrides the time source used for the script header
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		g.clock = clock
	}
}

// WithRunID overrides the generated run identifier
func WithRunID(id string) Option {
	return func(g *Generator) {
		g.report.RunID = id
	}
}

// New creates a generator writing SQL to w. The configuration must already be
// validated.
func New(cfg *config.Config, w io.Writer, logger *logging.Logger, opts ...Option) (*Generator, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	window, err := timeline.FromDates(cfg.Window.Start, cfg.Window.End)
	if err != nil {
		return nil, errors.NewConfigError(err.Error())
	}

	dialect, err := sqlgen.ParseDialect(cfg.Output.Dialect)
	if err != nil {
		return nil, errors.NewConfigError(err.Error())
	}

	seed := cfg.Generation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Generator{
		cfg:    cfg,
		faker:  gofakeit.New(uint64(seed)),
		window: window,
		reg:    registry.New(),
		out:    sqlgen.NewWriter(w, dialect, cfg.Output.QuoteIdentifiers),
		fields: logging.NewStandardField(),
		title:  cases.Title(language.English),
		unique: newUniqueValues(cfg.Generation.UniqueMaxAttempts),
		report: &types.Report{RunID: uuid.NewString(), Seed: seed, Output: cfg.Output.Path},
		seed:   seed,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logger.WithRunID(g.report.RunID)

	return g, nil
}

// Seed returns the seed the run uses
func (g *Generator) Seed() int64 {
	return g.seed
}

// Registry exposes the run's registry for inspection after Run
func (g *Generator) Registry() *registry.Registry {
	return g.reg
}

// Run generates every table and flushes the script
func (g *Generator) Run(ctx context.Context) (*types.Report, error) {
	started := time.Now()
	g.logger.Info("Generation started",
		logging.FieldSeed, g.seed,
		"window_start", g.window.Start.Format(config.DateLayout),
		"window_end", g.window.End.Format(config.DateLayout),
		"dialect", g.out.Dialect().Name(),
	)

	err := g.out.Header(sqlgen.Header{
		RunID:       g.report.RunID,
		GeneratedAt: g.clock(),
		WindowStart: g.window.Start,
		WindowEnd:   g.window.End,
		Seed:        g.seed,
	})
	if err != nil {
		return g.report, err
	}

	scheduler := pipeline.NewScheduler(g.reg, g.logger)
	scheduler.Add(g.phases()...)
	if err := scheduler.Run(ctx); err != nil {
		return g.report, err
	}

	if err := g.out.Flush(); err != nil {
		return g.report, err
	}

	g.report.Duration = time.Since(started)
	g.logger.Info("Generation completed",
		"total_rows", g.report.TotalRows,
		"warnings", len(g.report.Warnings),
		g.fields.Duration(g.report.Duration),
	)
	return g.report, nil
}

// phases lists every generation phase by dependency level
func (g *Generator) phases() []pipeline.Phase {
	var phases []pipeline.Phase
	for _, spec := range g.tableSpecs() {
		phases = append(phases, g.tablePhase(spec))
	}

	phases = append(phases,
		pipeline.Phase{
			Name:     "driver_list",
			Level:    3,
			Requires: []models.Entity{models.Schedule, models.Driver},
			Produces: []models.Entity{models.DriverList},
			Run:      g.generateDriverList,
		},
		pipeline.Phase{
			Name:     "staff_allocation",
			Level:    3,
			Requires: []models.Entity{models.ServiceDetails, models.Staff},
			Produces: []models.Entity{models.StaffAllocation},
			Run:      g.generateStaffAllocations,
		},
		pipeline.Phase{
			Name:     "booking",
			Level:    4,
			Requires: []models.Entity{models.Member, models.Payment, models.Schedule, models.Promotion},
			Produces: []models.Entity{models.Booking, models.BookingDetails},
			Run:      g.generateBookings,
		},
		pipeline.Phase{
			Name:     "refund",
			Level:    5,
			Requires: []models.Entity{models.Booking},
			Produces: []models.Entity{models.Refund},
			Run:      g.generateRefunds,
		},
		pipeline.Phase{
			Name:     "extension",
			Level:    5,
			Requires: []models.Entity{models.Booking},
			Produces: []models.Entity{models.Extension},
			Run:      g.generateExtensions,
		},
		// The ticket counter is shared with the booking flow, so Ticket is
		// sealed only once the filler has drawn from it
		pipeline.Phase{
			Name:     "available_ticket",
			Level:    6,
			Requires: []models.Entity{models.Schedule},
			Produces: []models.Entity{models.Ticket},
			Run:      g.generateAvailableTickets,
		},
	)
	return phases
}

// record stores a table result in the report and warns on a shortfall
func (g *Generator) record(table string, requested, produced, attempts int) {
	g.report.Record(table, requested, produced)
	if produced >= requested {
		return
	}

	msg := fmt.Sprintf("produced %d of %d requested rows", produced, requested)
	g.report.Warn(table, msg)
	g.logger.Warn("Table came out short", g.fields.Shortfall(table, requested, produced, attempts)...)
}

// warn reports a degradation that is not a row shortfall
func (g *Generator) warn(table, msg string, attrs ...any) {
	g.report.Warn(table, msg)
	g.logger.WithTable(table).Warn(msg, attrs...)
}

// money draws an amount in [min, max] rounded to cents
func (g *Generator) money(min, max float64) decimal.Decimal {
	return models.RoundMoney(decimal.NewFromFloat(g.faker.Float64Range(min, max)))
}

func (g *Generator) pick(values []string) string {
	return values[g.faker.IntRange(0, len(values)-1)]
}
