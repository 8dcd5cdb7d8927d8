package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chybatronik/busTicketSeed/internal/models"
	"github.com/chybatronik/busTicketSeed/internal/pipeline"
	"github.com/chybatronik/busTicketSeed/internal/sqlgen"
	"github.com/chybatronik/busTicketSeed/internal/timeline"
)

const (
	licensePattern  = "?#######??"
	locationPattern = "L?-###"
	platePattern    = "???-####"

	maxCityAttempts = 50
	maxPlatforms    = 20
)

// tableSpec declares a table whose rows are independent of each other
type tableSpec struct {
	Table    models.Entity
	Level    int
	Requires []models.Entity
	Columns  []string
	Count    int
	// Row builds the literals of row id
	Row func(id int64) ([]sqlgen.Value, error)
	// SelfRegisters is set when Row stores the row in a registry side table,
	// which registers the id as well
	SelfRegisters bool
}

func (g *Generator) tablePhase(spec tableSpec) pipeline.Phase {
	return pipeline.Phase{
		Name:     strings.ToLower(spec.Table.String()),
		Level:    spec.Level,
		Requires: spec.Requires,
		Produces: []models.Entity{spec.Table},
		Run: func(ctx context.Context) error {
			return g.emitTable(ctx, spec)
		},
	}
}

// emitTable writes the banner, every row and the closing blank line of a table
func (g *Generator) emitTable(ctx context.Context, spec tableSpec) error {
	table := spec.Table.String()
	if err := g.out.Banner(table); err != nil {
		return err
	}

	produced := 0
	for i := 1; i <= spec.Count; i++ {
		if i%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		id := int64(i)
		values, err := spec.Row(id)
		if err != nil {
			return err
		}
		if !spec.SelfRegisters {
			if err := g.reg.Register(spec.Table, id); err != nil {
				return err
			}
		}
		if err := g.out.Insert(table, spec.Columns, values...); err != nil {
			return err
		}
		produced++
	}

	g.record(table, spec.Count, produced, produced)
	return g.out.Blank()
}

// tableSpecs declares the level 0 to 2 tables
func (g *Generator) tableSpecs() []tableSpec {
	c := g.cfg.Counts
	return []tableSpec{
		{
			Table:   models.Company,
			Columns: []string{"company_id", "name"},
			Count:   c.Companies,
			Row: func(id int64) ([]sqlgen.Value, error) {
				return []sqlgen.Value{sqlgen.Int(id), sqlgen.Text(g.faker.Company())}, nil
			},
		},
		{
			Table:   models.Driver,
			Columns: []string{"driver_id", "name", "license_no"},
			Count:   c.Drivers,
			Row: func(id int64) ([]sqlgen.Value, error) {
				return []sqlgen.Value{
					sqlgen.Int(id),
					sqlgen.Text(g.faker.Name()),
					sqlgen.Text(g.pattern(licensePattern)),
				}, nil
			},
		},
		{
			Table:   models.Staff,
			Columns: []string{"staff_id", "name", "role", "email", "contact_no", "employment_date", "status"},
			Count:   c.Staff,
			Row:     g.staffRow,
		},
		{
			Table:   models.Shop,
			Columns: []string{"shop_id", "shop_name", "location_code"},
			Count:   c.Shops,
			Row:     g.shopRow,
		},
		{
			Table:   models.Service,
			Columns: []string{"service_id", "service_name", "standard_cost"},
			Count:   c.Services,
			Row:     g.serviceRow,
		},
		{
			Table:   models.Member,
			Columns: []string{"member_id", "name", "email", "contact_no", "registration_date"},
			Count:   c.Members,
			Row:     g.memberRow,
		},
		{
			Table:         models.Campaign,
			Columns:       []string{"campaign_id", "campaign_name", "start_date", "end_date"},
			Count:         c.Campaigns,
			Row:           g.campaignRow,
			SelfRegisters: true,
		},
		{
			Table:    models.Promotion,
			Level:    1,
			Requires: []models.Entity{models.Campaign},
			Columns: []string{
				"promotion_id", "promotion_name", "description", "discount_type",
				"discount_value", "valid_from", "valid_until", "campaign_id",
			},
			Count:         c.Promotions,
			Row:           g.promotionRow,
			SelfRegisters: true,
		},
		{
			Table:    models.Bus,
			Level:    1,
			Requires: []models.Entity{models.Company},
			Columns:  []string{"bus_id", "plate_number", "capacity", "company_id"},
			Count:         c.Buses,
			Row:           g.busRow,
			SelfRegisters: true,
		},
		{
			Table:   models.Payment,
			Level:   1,
			Columns: []string{"payment_id", "payment_date", "amount", "payment_method"},
			Count:   c.Payments,
			Row: func(id int64) ([]sqlgen.Value, error) {
				return []sqlgen.Value{
					sqlgen.Int(id),
					sqlgen.Time(g.window.Random(g.faker)),
					sqlgen.Money(g.money(15, 250)),
					sqlgen.Text(g.pick(models.PaymentMethods)),
				}, nil
			},
		},
		{
			Table:    models.Schedule,
			Level:    2,
			Requires: []models.Entity{models.Bus},
			Columns: []string{
				"schedule_id", "departure_time", "arrival_time", "base_price",
				"origin_station", "destination_station", "platform_no", "bus_id",
			},
			Count:         c.Schedules,
			Row:           g.scheduleRow,
			SelfRegisters: true,
		},
		{
			Table:    models.RentalCollection,
			Level:    2,
			Requires: []models.Entity{models.Shop, models.Staff},
			Columns:  []string{"rental_id", "rental_date", "amount", "collection_date", "shop_id", "staff_id"},
			Count:    c.RentalCollections,
			Row:      g.rentalRow,
		},
		{
			Table:    models.ServiceDetails,
			Level:    2,
			Requires: []models.Entity{models.Service, models.Bus},
			Columns:  []string{"service_transaction_id", "service_date", "actual_cost", "service_id", "bus_id"},
			Count:    c.ServiceDetails,
			Row:      g.serviceDetailsRow,
		},
	}
}

// pattern fills ? with letters and # with digits, upper-cased
func (g *Generator) pattern(p string) string {
	return strings.ToUpper(g.faker.Numerify(g.faker.Lexify(p)))
}

func (g *Generator) staffRow(id int64) ([]sqlgen.Value, error) {
	email, err := g.unique.next(models.Staff.String(), "email", g.faker.Email)
	if err != nil {
		return nil, err
	}
	return []sqlgen.Value{
		sqlgen.Int(id),
		sqlgen.Text(g.faker.Name()),
		sqlgen.Text(g.pick(models.StaffRoles)),
		sqlgen.Text(email),
		sqlgen.Text(g.faker.PhoneFormatted()),
		sqlgen.Time(g.window.Random(g.faker)),
		sqlgen.Text(g.pick(models.StaffStatuses)),
	}, nil
}

func (g *Generator) shopRow(id int64) ([]sqlgen.Value, error) {
	code, err := g.unique.next(models.Shop.String(), "location_code", func() string {
		return g.pattern(locationPattern)
	})
	if err != nil {
		return nil, err
	}
	return []sqlgen.Value{
		sqlgen.Int(id),
		sqlgen.Text(g.faker.Company() + " " + g.pick(models.ShopSuffixes)),
		sqlgen.Text(code),
	}, nil
}

func (g *Generator) serviceRow(id int64) ([]sqlgen.Value, error) {
	name := g.pick(models.ServiceNames)
	if int(id) > len(models.ServiceNames) {
		name = fmt.Sprintf("Generic Service %d", id)
	}
	return []sqlgen.Value{
		sqlgen.Int(id),
		sqlgen.Text(name),
		sqlgen.Money(g.money(50, 2000)),
	}, nil
}

func (g *Generator) memberRow(id int64) ([]sqlgen.Value, error) {
	email, err := g.unique.next(models.Member.String(), "email", g.faker.Email)
	if err != nil {
		return nil, err
	}
	return []sqlgen.Value{
		sqlgen.Int(id),
		sqlgen.Text(g.faker.Name()),
		sqlgen.Text(email),
		sqlgen.Text(g.faker.PhoneFormatted()),
		sqlgen.Time(g.window.Random(g.faker)),
	}, nil
}

func (g *Generator) campaignRow(id int64) ([]sqlgen.Value, error) {
	start := g.window.Random(g.faker)
	campaign := models.CampaignRecord{
		ID:    id,
		Start: start,
		End:   g.window.SpanFrom(g.faker, start, 30, 90),
	}
	if err := g.reg.AddCampaign(campaign); err != nil {
		return nil, err
	}

	name := g.title.String(g.faker.BuzzWord()+" "+g.faker.BS()) + " Campaign"
	return []sqlgen.Value{
		sqlgen.Int(id),
		sqlgen.Text(name),
		sqlgen.Time(campaign.Start),
		sqlgen.Time(campaign.End),
	}, nil
}

func (g *Generator) promotionRow(id int64) ([]sqlgen.Value, error) {
	campaignID, err := g.reg.Pick(g.faker, models.Campaign)
	if err != nil {
		return nil, err
	}
	campaign, _ := g.reg.Campaign(campaignID)

	discountType := models.DiscountTypes[g.faker.IntRange(0, len(models.DiscountTypes)-1)]
	var value decimal.Decimal
	if discountType == models.DiscountPercentage {
		value = g.money(5, 20)
	} else {
		value = g.money(1, 10)
	}

	// Promotions start while their campaign runs
	from := timeline.Between(g.faker, campaign.Start, campaign.End)
	promo := models.PromotionRecord{
		ID:            id,
		CampaignID:    campaignID,
		DiscountType:  discountType,
		DiscountValue: value,
		ValidFrom:     from,
		ValidUntil:    g.window.SpanFrom(g.faker, from, 15, 60),
	}
	if err := g.reg.AddPromotion(promo); err != nil {
		return nil, err
	}

	return []sqlgen.Value{
		sqlgen.Int(id),
		sqlgen.Text(g.title.String(g.faker.BS())),
		sqlgen.Text(g.faker.Sentence(8)),
		sqlgen.Text(string(promo.DiscountType)),
		sqlgen.Money(promo.DiscountValue),
		sqlgen.Time(promo.ValidFrom),
		sqlgen.Time(promo.ValidUntil),
		sqlgen.Int(campaignID),
	}, nil
}

func (g *Generator) busRow(id int64) ([]sqlgen.Value, error) {
	plate, err := g.unique.next(models.Bus.String(), "plate_number", func() string {
		return g.pattern(platePattern)
	})
	if err != nil {
		return nil, err
	}
	companyID, err := g.reg.Pick(g.faker, models.Company)
	if err != nil {
		return nil, err
	}
	capacity := g.faker.IntRange(models.MinBusCapacity, models.MaxBusCapacity)
	if err := g.reg.AddBus(id, capacity); err != nil {
		return nil, err
	}
	return []sqlgen.Value{
		sqlgen.Int(id),
		sqlgen.Text(plate),
		sqlgen.Int(int64(capacity)),
		sqlgen.Int(companyID),
	}, nil
}

func (g *Generator) scheduleRow(id int64) ([]sqlgen.Value, error) {
	busID, err := g.reg.Pick(g.faker, models.Bus)
	if err != nil {
		return nil, err
	}
	capacity, _ := g.reg.BusCapacity(busID)

	departure, arrival := g.window.ScheduleTimes(g.faker)
	schedule := models.ScheduleRecord{
		ID:        id,
		Departure: departure,
		Arrival:   arrival,
		BasePrice: g.money(20, 150),
		BusID:     busID,
		Capacity:  capacity,
	}
	if err := g.reg.AddSchedule(schedule); err != nil {
		return nil, err
	}

	origin, destination := g.route()
	return []sqlgen.Value{
		sqlgen.Int(id),
		sqlgen.Time(schedule.Departure),
		sqlgen.Time(schedule.Arrival),
		sqlgen.Money(schedule.BasePrice),
		sqlgen.Text(origin),
		sqlgen.Text(destination),
		sqlgen.Text(fmt.Sprintf("P%d", g.faker.IntRange(1, maxPlatforms))),
		sqlgen.Int(busID),
	}, nil
}

// route returns two different cities
func (g *Generator) route() (origin, destination string) {
	origin = g.faker.City()
	for i := 0; i < maxCityAttempts; i++ {
		destination = g.faker.City()
		if destination != origin {
			return origin, destination
		}
	}
	return origin, origin + " Central"
}

func (g *Generator) rentalRow(id int64) ([]sqlgen.Value, error) {
	shopID, err := g.reg.Pick(g.faker, models.Shop)
	if err != nil {
		return nil, err
	}
	staffID, err := g.reg.Pick(g.faker, models.Staff)
	if err != nil {
		return nil, err
	}

	rented := g.window.Random(g.faker)
	return []sqlgen.Value{
		sqlgen.Int(id),
		sqlgen.Time(rented),
		sqlgen.Money(g.money(500, 3000)),
		sqlgen.Time(g.window.SpanFrom(g.faker, rented, 0, 5)),
		sqlgen.Int(shopID),
		sqlgen.Int(staffID),
	}, nil
}

func (g *Generator) serviceDetailsRow(id int64) ([]sqlgen.Value, error) {
	serviceID, err := g.reg.Pick(g.faker, models.Service)
	if err != nil {
		return nil, err
	}
	busID, err := g.reg.Pick(g.faker, models.Bus)
	if err != nil {
		return nil, err
	}
	return []sqlgen.Value{
		sqlgen.Int(id),
		sqlgen.Time(g.window.Random(g.faker)),
		sqlgen.Money(g.money(100, 5000)),
		sqlgen.Int(serviceID),
		sqlgen.Int(busID),
	}, nil
}
