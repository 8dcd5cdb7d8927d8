package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chybatronik/busTicketSeed/internal/models"
	"github.com/chybatronik/busTicketSeed/internal/sqlgen"
)

func fieldsOf(err error) []string {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	fields := make([]string, 0, len(ve))
	for _, e := range ve {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name           string
		mutate         func(c *Config)
		expectedFields []string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:           "negative count",
			mutate:         func(c *Config) { c.Counts.Drivers = -1 },
			expectedFields: []string{"NUM_DRIVERS"},
		},
		{
			name: "all zero counts are valid",
			mutate: func(c *Config) {
				c.Counts = CountsConfig{}
			},
		},
		{
			name: "schedules without buses",
			mutate: func(c *Config) {
				c.Counts.Buses = 0
				c.Counts.ServiceDetails = 0
				c.Counts.StaffAllocations = 0
			},
			expectedFields: []string{"NUM_SCHEDULES"},
		},
		{
			name:           "window too short",
			mutate:         func(c *Config) { c.Window.End = c.Window.Start.Add(24 * time.Hour) },
			expectedFields: []string{"WINDOW_END"},
		},
		{
			name:           "window reversed",
			mutate:         func(c *Config) { c.Window.Start, c.Window.End = c.Window.End, c.Window.Start },
			expectedFields: []string{"WINDOW_END"},
		},
		{
			name: "ticket range reversed",
			mutate: func(c *Config) {
				c.Booking.MinTickets = 3
				c.Booking.MaxTickets = 2
			},
			expectedFields: []string{"TICKETS_PER_BOOKING_MAX"},
		},
		{
			name:           "tickets beyond smallest bus",
			mutate:         func(c *Config) { c.Booking.MaxTickets = models.MinBusCapacity + 1 },
			expectedFields: []string{"TICKETS_PER_BOOKING_MAX"},
		},
		{
			name:   "tickets filling smallest bus",
			mutate: func(c *Config) { c.Booking.MaxTickets = models.MinBusCapacity },
		},
		{
			name:   "postgres dialect",
			mutate: func(c *Config) { c.Output.Dialect = sqlgen.DialectPostgres },
		},
		{
			name:           "promotion rate out of range",
			mutate:         func(c *Config) { c.Booking.PromotionRate = 1.5 },
			expectedFields: []string{"PROMOTION_RATE"},
		},
		{
			name:           "lead days zero",
			mutate:         func(c *Config) { c.Booking.MinLeadDays = 0 },
			expectedFields: []string{"BOOKING_LEAD_DAYS_MIN"},
		},
		{
			name:           "unknown dialect",
			mutate:         func(c *Config) { c.Output.Dialect = "sqlite" },
			expectedFields: []string{"SQL_DIALECT"},
		},
		{
			name: "bad logging",
			mutate: func(c *Config) {
				c.Logging.Level = "verbose"
				c.Logging.Format = "xml"
			},
			expectedFields: []string{"LOG_LEVEL", "LOG_FORMAT"},
		},
		{
			name:           "zero retry factor",
			mutate:         func(c *Config) { c.Generation.PairRetryFactor = 0 },
			expectedFields: []string{"PAIR_RETRY_FACTOR"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)

			err := Validate(c)
			if len(tc.expectedFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ElementsMatch(t, tc.expectedFields, fieldsOf(err))
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	ve := ValidationErrors{
		{Field: "NUM_BUSES", Value: "-2", Message: "must not be negative"},
	}

	assert.Equal(t,
		"configuration validation errors:\n  - validation failed for NUM_BUSES='-2': must not be negative\n",
		ve.Error())
	assert.Equal(t, "", ValidationErrors{}.Error())
}
