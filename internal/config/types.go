// Package config provides configuration types and structures for the busTicketSeed generator.
package config

import "time"

// Config represents the generator configuration
type Config struct {
	Counts     CountsConfig
	Window     WindowConfig
	Booking    BookingConfig
	Generation GenerationConfig
	Output     OutputConfig
	Logging    LoggingConfig
}

// CountsConfig holds requested row counts per table
type CountsConfig struct {
	Companies         int
	Drivers           int
	Staff             int
	Shops             int
	Services          int
	Members           int
	Campaigns         int
	Promotions        int
	Buses             int
	Payments          int
	Schedules         int
	Bookings          int
	RentalCollections int
	ServiceDetails    int
	DriverListEntries int
	StaffAllocations  int
	Refunds           int
	Extensions        int
	AvailableTickets  int
}

// WindowConfig holds the global date window every timestamp must fall in
type WindowConfig struct {
	Start time.Time // Inclusive lower bound
	End   time.Time // Inclusive upper bound
}

// BookingConfig holds booking flow parameters
type BookingConfig struct {
	MinTickets    int     // Minimum tickets per booking
	MaxTickets    int     // Maximum tickets per booking
	PromotionRate float64 // Probability that a ticket carries a promotion
	MinLeadDays   int     // Minimum days between booking and departure
	MaxLeadDays   int     // Maximum days between booking and departure
}

// GenerationConfig holds sampling parameters
type GenerationConfig struct {
	Seed              int64 // Random seed, 0 picks a time-based seed
	PairRetryFactor   int   // Rejection sampling budget as a multiple of the target
	UniqueMaxAttempts int   // Attempts a unique value helper makes before failing
}

// OutputConfig holds output artifact configuration
type OutputConfig struct {
	Path             string // Output file path, "-" for stdout
	Dialect          string // SQL dialect (oracle, postgres)
	QuoteIdentifiers bool   // Quote table and column names
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // Log level (debug, info, warn, error)
	Format string // Log format (json, text)
}
