package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chybatronik/busTicketSeed/internal/models"
	"github.com/chybatronik/busTicketSeed/internal/sqlgen"
)

// MinWindowLength is the shortest global window a run accepts
const MinWindowLength = 48 * time.Hour

// MaxTicketsPerBooking is bounded by the seats of the smallest bus a schedule can run on
const MaxTicketsPerBooking = models.MinBusCapacity

// Validate validates the configuration and returns ValidationErrors when anything is off
func Validate(config *Config) error {
	var errors ValidationErrors

	errors = append(errors, validateCounts(&config.Counts)...)
	errors = append(errors, validateDependencies(&config.Counts)...)
	errors = append(errors, validateWindow(&config.Window)...)
	errors = append(errors, validateBooking(&config.Booking)...)
	errors = append(errors, validateGeneration(&config.Generation)...)
	errors = append(errors, validateOutput(&config.Output)...)
	errors = append(errors, validateLogging(&config.Logging)...)

	if len(errors) > 0 {
		return errors
	}

	return nil
}

type namedCount struct {
	name  string
	value int
}

func countList(c *CountsConfig) []namedCount {
	return []namedCount{
		{"NUM_COMPANIES", c.Companies},
		{"NUM_DRIVERS", c.Drivers},
		{"NUM_STAFF", c.Staff},
		{"NUM_SHOPS", c.Shops},
		{"NUM_SERVICES", c.Services},
		{"NUM_MEMBERS", c.Members},
		{"NUM_CAMPAIGNS", c.Campaigns},
		{"NUM_PROMOTIONS", c.Promotions},
		{"NUM_BUSES", c.Buses},
		{"NUM_PAYMENTS", c.Payments},
		{"NUM_SCHEDULES", c.Schedules},
		{"NUM_BOOKINGS", c.Bookings},
		{"NUM_RENTAL_COLLECTIONS", c.RentalCollections},
		{"NUM_SERVICE_DETAILS", c.ServiceDetails},
		{"NUM_DRIVER_LIST_ENTRIES", c.DriverListEntries},
		{"NUM_STAFF_ALLOCATIONS", c.StaffAllocations},
		{"NUM_REFUNDS", c.Refunds},
		{"NUM_EXTENSIONS", c.Extensions},
		{"NUM_AVAILABLE_TICKETS", c.AvailableTickets},
	}
}

// validateCounts validates that every requested count is non-negative
func validateCounts(c *CountsConfig) ValidationErrors {
	var errors ValidationErrors
	for _, nc := range countList(c) {
		if nc.value < 0 {
			errors = append(errors, ValidationError{
				Field:   nc.name,
				Value:   strconv.Itoa(nc.value),
				Message: "must not be negative",
			})
		}
	}
	return errors
}

// validateDependencies rejects counts whose foreign keys would have nothing to reference
func validateDependencies(c *CountsConfig) ValidationErrors {
	var errors ValidationErrors

	require := func(dependent namedCount, needs ...namedCount) {
		if dependent.value <= 0 {
			return
		}
		for _, need := range needs {
			if need.value <= 0 {
				errors = append(errors, ValidationError{
					Field:   dependent.name,
					Value:   strconv.Itoa(dependent.value),
					Message: fmt.Sprintf("requires %s to be positive", need.name),
				})
			}
		}
	}

	companies := namedCount{"NUM_COMPANIES", c.Companies}
	drivers := namedCount{"NUM_DRIVERS", c.Drivers}
	staff := namedCount{"NUM_STAFF", c.Staff}
	shops := namedCount{"NUM_SHOPS", c.Shops}
	services := namedCount{"NUM_SERVICES", c.Services}
	members := namedCount{"NUM_MEMBERS", c.Members}
	campaigns := namedCount{"NUM_CAMPAIGNS", c.Campaigns}
	buses := namedCount{"NUM_BUSES", c.Buses}
	payments := namedCount{"NUM_PAYMENTS", c.Payments}
	schedules := namedCount{"NUM_SCHEDULES", c.Schedules}
	bookings := namedCount{"NUM_BOOKINGS", c.Bookings}
	serviceDetails := namedCount{"NUM_SERVICE_DETAILS", c.ServiceDetails}

	require(namedCount{"NUM_PROMOTIONS", c.Promotions}, campaigns)
	require(buses, companies)
	require(schedules, buses)
	require(namedCount{"NUM_RENTAL_COLLECTIONS", c.RentalCollections}, shops, staff)
	require(serviceDetails, services, buses)
	require(namedCount{"NUM_DRIVER_LIST_ENTRIES", c.DriverListEntries}, schedules, drivers)
	require(namedCount{"NUM_STAFF_ALLOCATIONS", c.StaffAllocations}, serviceDetails, staff)
	require(bookings, members, payments, schedules)
	require(namedCount{"NUM_REFUNDS", c.Refunds}, bookings)
	require(namedCount{"NUM_EXTENSIONS", c.Extensions}, bookings)
	require(namedCount{"NUM_AVAILABLE_TICKETS", c.AvailableTickets}, schedules)

	return errors
}

// validateWindow validates the global date window
func validateWindow(w *WindowConfig) ValidationErrors {
	if w.Start.IsZero() || w.End.IsZero() {
		return ValidationErrors{{Field: "WINDOW_START/WINDOW_END", Value: "", Message: "both bounds are required"}}
	}

	if w.End.Sub(w.Start) < MinWindowLength {
		return ValidationErrors{{
			Field:   "WINDOW_END",
			Value:   w.End.Format(DateLayout),
			Message: fmt.Sprintf("must be at least %s after WINDOW_START", MinWindowLength),
		}}
	}

	return nil
}

// validateBooking validates booking flow parameters
func validateBooking(b *BookingConfig) ValidationErrors {
	var errors ValidationErrors

	if b.MinTickets < 1 {
		errors = append(errors, ValidationError{
			Field:   "TICKETS_PER_BOOKING_MIN",
			Value:   strconv.Itoa(b.MinTickets),
			Message: "must be at least 1",
		})
	}
	if b.MaxTickets < b.MinTickets || b.MaxTickets > MaxTicketsPerBooking {
		errors = append(errors, ValidationError{
			Field:   "TICKETS_PER_BOOKING_MAX",
			Value:   strconv.Itoa(b.MaxTickets),
			Message: fmt.Sprintf("must be between TICKETS_PER_BOOKING_MIN and %d", MaxTicketsPerBooking),
		})
	}

	if b.PromotionRate < 0 || b.PromotionRate > 1 {
		errors = append(errors, ValidationError{
			Field:   "PROMOTION_RATE",
			Value:   strconv.FormatFloat(b.PromotionRate, 'f', -1, 64),
			Message: "must be between 0 and 1",
		})
	}

	if b.MinLeadDays < 1 {
		errors = append(errors, ValidationError{
			Field:   "BOOKING_LEAD_DAYS_MIN",
			Value:   strconv.Itoa(b.MinLeadDays),
			Message: "must be at least 1",
		})
	}
	if b.MaxLeadDays < b.MinLeadDays {
		errors = append(errors, ValidationError{
			Field:   "BOOKING_LEAD_DAYS_MAX",
			Value:   strconv.Itoa(b.MaxLeadDays),
			Message: "must not be less than BOOKING_LEAD_DAYS_MIN",
		})
	}

	return errors
}

// validateGeneration validates sampling parameters
func validateGeneration(g *GenerationConfig) ValidationErrors {
	var errors ValidationErrors

	if g.PairRetryFactor < 1 {
		errors = append(errors, ValidationError{
			Field:   "PAIR_RETRY_FACTOR",
			Value:   strconv.Itoa(g.PairRetryFactor),
			Message: "must be at least 1",
		})
	}

	if g.UniqueMaxAttempts < 1 {
		errors = append(errors, ValidationError{
			Field:   "UNIQUE_MAX_ATTEMPTS",
			Value:   strconv.Itoa(g.UniqueMaxAttempts),
			Message: "must be at least 1",
		})
	}

	return errors
}

// validateOutput validates output configuration
func validateOutput(o *OutputConfig) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(o.Path) == "" {
		errors = append(errors, ValidationError{Field: "OUTPUT_FILE", Value: o.Path, Message: "is required"})
	}

	if !contains(sqlgen.Dialects, o.Dialect) {
		errors = append(errors, ValidationError{
			Field:   "SQL_DIALECT",
			Value:   o.Dialect,
			Message: "must be one of: " + strings.Join(sqlgen.Dialects, ", "),
		})
	}

	return errors
}

// validateLogging validates logging configuration
func validateLogging(logging *LoggingConfig) ValidationErrors {
	var errors ValidationErrors

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "LOG_LEVEL",
			Value:   logging.Level,
			Message: "must be one of: " + strings.Join(validLevels, ", "),
		})
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, logging.Format) {
		errors = append(errors, ValidationError{
			Field:   "LOG_FORMAT",
			Value:   logging.Format,
			Message: "must be one of: " + strings.Join(validFormats, ", "),
		})
	}

	return errors
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
