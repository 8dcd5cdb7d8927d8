package models

import "strconv"

// TicketStatus is the closed set of ticket states
type TicketStatus string

const (
	TicketAvailable TicketStatus = "Available"
	TicketBooked    TicketStatus = "Booked"
	TicketCancelled TicketStatus = "Cancelled"
	TicketExtended  TicketStatus = "Extended"
)

// DiscountType is the closed set of promotion discount kinds
type DiscountType string

const (
	DiscountPercentage  DiscountType = "Percentage"
	DiscountFixedAmount DiscountType = "Fixed Amount"
)

// Values accepted by the schema's CHECK constraints
var (
	StaffRoles      = []string{"Counter Staff", "Cleaner", "Manager", "Technician"}
	StaffStatuses   = []string{"Active", "Resigned", "On Leave"}
	PaymentMethods  = []string{"Credit Card", "Debit Card", "Online Banking", "E-Wallet"}
	TicketStatuses  = []TicketStatus{TicketAvailable, TicketBooked, TicketCancelled, TicketExtended}
	DiscountTypes   = []DiscountType{DiscountPercentage, DiscountFixedAmount}
	AllocationRoles = []string{"Technician", "Cleaner"}
)

// Reference data for generated rows
var (
	ShopSuffixes = []string{"Stall", "Mart", "Cafe"}
	ServiceNames = []string{
		"Bus Wash", "Tyre Replacement", "Engine Overhaul", "Brake System Repair",
		"Oil Change", "AC Service", "Full Inspection",
	}
	SeatColumns = []string{"A", "B", "C", "D"}
)

// Bus capacity bounds. A schedule sells at most the seats of its bus.
const (
	MinBusCapacity = 40
	MaxBusCapacity = 55
)

// SeatLabel names the i-th seat of a bus (0-based), filling rows left to right: 1A, 1B, ... 2A
func SeatLabel(i int) string {
	return strconv.Itoa(i/len(SeatColumns)+1) + SeatColumns[i%len(SeatColumns)]
}
