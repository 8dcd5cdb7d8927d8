// Package config provides configuration loading and environment management
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DateLayout is the layout of WINDOW_START and WINDOW_END
const DateLayout = "2006-01-02"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s='%s': %s", e.Field, e.Value, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	msg := "configuration validation errors:\n"
	for _, err := range ve {
		msg += fmt.Sprintf("  - %s\n", err.Error())
	}
	return msg
}

// EnvironmentDefaults defines every recognised environment variable with its default
var EnvironmentDefaults = map[string]string{
	"NUM_COMPANIES":           "12",
	"NUM_DRIVERS":             "200",
	"NUM_STAFF":               "150",
	"NUM_SHOPS":               "30",
	"NUM_SERVICES":            "12",
	"NUM_MEMBERS":             "7500",
	"NUM_CAMPAIGNS":           "10",
	"NUM_PROMOTIONS":          "50",
	"NUM_BUSES":               "120",
	"NUM_SCHEDULES":           "5000",
	"NUM_PAYMENTS":            "25000",
	"NUM_BOOKINGS":            "25000",
	"NUM_RENTAL_COLLECTIONS":  "500",
	"NUM_SERVICE_DETAILS":     "800",
	"NUM_DRIVER_LIST_ENTRIES": "5000",
	"NUM_STAFF_ALLOCATIONS":   "1500",
	"NUM_REFUNDS":             "1500",
	"NUM_EXTENSIONS":          "1000",
	"NUM_AVAILABLE_TICKETS":   "2000",
	"WINDOW_START":            "2024-01-01",
	"WINDOW_END":              "2025-12-31",
	"TICKETS_PER_BOOKING_MIN": "1",
	"TICKETS_PER_BOOKING_MAX": "4",
	"PROMOTION_RATE":          "0.3",
	"BOOKING_LEAD_DAYS_MIN":   "1",
	"BOOKING_LEAD_DAYS_MAX":   "90",
	"RANDOM_SEED":             "0",
	"PAIR_RETRY_FACTOR":       "5",
	"UNIQUE_MAX_ATTEMPTS":     "1000",
	"OUTPUT_FILE":             "02_populate_data.sql",
	"SQL_DIALECT":             "oracle",
	"SQL_QUOTE_IDENTIFIERS":   "false",
	"LOG_LEVEL":               "info",
	"LOG_FORMAT":              "text",
}

// Load loads and validates configuration from an optional .env file and the environment
func Load(envFiles ...string) (*Config, error) {
	// 1. Load .env file if it exists
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// 2. Parse values that cannot fall back silently
	var parseErrs ValidationErrors
	start := getEnvDate("WINDOW_START", &parseErrs)
	end := getEnvDate("WINDOW_END", &parseErrs)
	rate := getEnvFloat("PROMOTION_RATE", &parseErrs)
	if len(parseErrs) > 0 {
		return nil, fmt.Errorf("environment validation failed: %w", parseErrs)
	}

	// 3. Load configuration with defaults
	config := &Config{
		Counts: CountsConfig{
			Companies:         getEnvInt("NUM_COMPANIES"),
			Drivers:           getEnvInt("NUM_DRIVERS"),
			Staff:             getEnvInt("NUM_STAFF"),
			Shops:             getEnvInt("NUM_SHOPS"),
			Services:          getEnvInt("NUM_SERVICES"),
			Members:           getEnvInt("NUM_MEMBERS"),
			Campaigns:         getEnvInt("NUM_CAMPAIGNS"),
			Promotions:        getEnvInt("NUM_PROMOTIONS"),
			Buses:             getEnvInt("NUM_BUSES"),
			Payments:          getEnvInt("NUM_PAYMENTS"),
			Schedules:         getEnvInt("NUM_SCHEDULES"),
			Bookings:          getEnvInt("NUM_BOOKINGS"),
			RentalCollections: getEnvInt("NUM_RENTAL_COLLECTIONS"),
			ServiceDetails:    getEnvInt("NUM_SERVICE_DETAILS"),
			DriverListEntries: getEnvInt("NUM_DRIVER_LIST_ENTRIES"),
			StaffAllocations:  getEnvInt("NUM_STAFF_ALLOCATIONS"),
			Refunds:           getEnvInt("NUM_REFUNDS"),
			Extensions:        getEnvInt("NUM_EXTENSIONS"),
			AvailableTickets:  getEnvInt("NUM_AVAILABLE_TICKETS"),
		},
		Window: WindowConfig{
			Start: start,
			End:   end,
		},
		Booking: BookingConfig{
			MinTickets:    getEnvInt("TICKETS_PER_BOOKING_MIN"),
			MaxTickets:    getEnvInt("TICKETS_PER_BOOKING_MAX"),
			PromotionRate: rate,
			MinLeadDays:   getEnvInt("BOOKING_LEAD_DAYS_MIN"),
			MaxLeadDays:   getEnvInt("BOOKING_LEAD_DAYS_MAX"),
		},
		Generation: GenerationConfig{
			Seed:              int64(getEnvInt("RANDOM_SEED")),
			PairRetryFactor:   getEnvInt("PAIR_RETRY_FACTOR"),
			UniqueMaxAttempts: getEnvInt("UNIQUE_MAX_ATTEMPTS"),
		},
		Output: OutputConfig{
			Path:             getEnv("OUTPUT_FILE"),
			Dialect:          strings.ToLower(getEnv("SQL_DIALECT")),
			QuoteIdentifiers: getEnvBool("SQL_QUOTE_IDENTIFIERS"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL"),
			Format: getEnv("LOG_FORMAT"),
		},
	}

	// 4. Post-load configuration validation
	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Default returns the configuration produced by an empty environment
func Default() *Config {
	start, _ := time.Parse(DateLayout, EnvironmentDefaults["WINDOW_START"])
	end, _ := time.Parse(DateLayout, EnvironmentDefaults["WINDOW_END"])
	rate, _ := strconv.ParseFloat(EnvironmentDefaults["PROMOTION_RATE"], 64)

	def := func(key string) int {
		n, _ := strconv.Atoi(EnvironmentDefaults[key])
		return n
	}

	return &Config{
		Counts: CountsConfig{
			Companies:         def("NUM_COMPANIES"),
			Drivers:           def("NUM_DRIVERS"),
			Staff:             def("NUM_STAFF"),
			Shops:             def("NUM_SHOPS"),
			Services:          def("NUM_SERVICES"),
			Members:           def("NUM_MEMBERS"),
			Campaigns:         def("NUM_CAMPAIGNS"),
			Promotions:        def("NUM_PROMOTIONS"),
			Buses:             def("NUM_BUSES"),
			Payments:          def("NUM_PAYMENTS"),
			Schedules:         def("NUM_SCHEDULES"),
			Bookings:          def("NUM_BOOKINGS"),
			RentalCollections: def("NUM_RENTAL_COLLECTIONS"),
			ServiceDetails:    def("NUM_SERVICE_DETAILS"),
			DriverListEntries: def("NUM_DRIVER_LIST_ENTRIES"),
			StaffAllocations:  def("NUM_STAFF_ALLOCATIONS"),
			Refunds:           def("NUM_REFUNDS"),
			Extensions:        def("NUM_EXTENSIONS"),
			AvailableTickets:  def("NUM_AVAILABLE_TICKETS"),
		},
		Window: WindowConfig{Start: start, End: end},
		Booking: BookingConfig{
			MinTickets:    def("TICKETS_PER_BOOKING_MIN"),
			MaxTickets:    def("TICKETS_PER_BOOKING_MAX"),
			PromotionRate: rate,
			MinLeadDays:   def("BOOKING_LEAD_DAYS_MIN"),
			MaxLeadDays:   def("BOOKING_LEAD_DAYS_MAX"),
		},
		Generation: GenerationConfig{
			PairRetryFactor:   def("PAIR_RETRY_FACTOR"),
			UniqueMaxAttempts: def("UNIQUE_MAX_ATTEMPTS"),
		},
		Output: OutputConfig{
			Path:    EnvironmentDefaults["OUTPUT_FILE"],
			Dialect: EnvironmentDefaults["SQL_DIALECT"],
		},
		Logging: LoggingConfig{
			Level:  EnvironmentDefaults["LOG_LEVEL"],
			Format: EnvironmentDefaults["LOG_FORMAT"],
		},
	}
}

// getEnv gets environment variable falling back to its registered default
func getEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return EnvironmentDefaults[key]
}

// getEnvInt gets environment variable as integer, invalid values fall back to the default
func getEnvInt(key string) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
		log.Printf("Warning: %s=%q is not an integer, using default %s", key, value, EnvironmentDefaults[key])
	}
	intValue, _ := strconv.Atoi(EnvironmentDefaults[key])
	return intValue
}

// getEnvBool gets environment variable as boolean, invalid values fall back to the default
func getEnvBool(key string) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	boolValue, _ := strconv.ParseBool(EnvironmentDefaults[key])
	return boolValue
}

// getEnvFloat gets environment variable as float, recording a validation error when malformed
func getEnvFloat(key string, errs *ValidationErrors) float64 {
	value := getEnv(key)
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		*errs = append(*errs, ValidationError{Field: key, Value: value, Message: "must be a number"})
		return 0
	}
	return f
}

// getEnvDate gets environment variable as a YYYY-MM-DD date in UTC
func getEnvDate(key string, errs *ValidationErrors) time.Time {
	value := getEnv(key)
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, ValidationError{Field: key, Value: value, Message: "must be a date in YYYY-MM-DD format"})
		return time.Time{}
	}
	return t
}
