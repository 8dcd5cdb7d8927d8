// Package models defines the records and closed enumerations of the bus-ticketing schema.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entity names a table of the target schema
type Entity string

// Tables of the target schema
const (
	Company          Entity = "Company"
	Driver           Entity = "Driver"
	Staff            Entity = "Staff"
	Shop             Entity = "Shop"
	Service          Entity = "Service"
	Member           Entity = "Member"
	Campaign         Entity = "Campaign"
	Promotion        Entity = "Promotion"
	Bus              Entity = "Bus"
	Payment          Entity = "Payment"
	Schedule         Entity = "Schedule"
	RentalCollection Entity = "RentalCollection"
	ServiceDetails   Entity = "ServiceDetails"
	DriverList       Entity = "DriverList"
	StaffAllocation  Entity = "StaffAllocation"
	Booking          Entity = "Booking"
	Ticket           Entity = "Ticket"
	BookingDetails   Entity = "BookingDetails"
	Refund           Entity = "Refund"
	Extension        Entity = "Extension"
)

// String returns the table name
func (e Entity) String() string {
	return string(e)
}

// ScheduleRecord holds the schedule attributes later phases depend on
type ScheduleRecord struct {
	ID        int64
	Departure time.Time
	Arrival   time.Time
	BasePrice decimal.Decimal
	BusID     int64
	// Capacity is the seat count of the bus, which bounds the tickets sold
	Capacity int
}

// CampaignRecord holds a campaign's running window
type CampaignRecord struct {
	ID    int64
	Start time.Time
	End   time.Time
}

// PromotionRecord holds the promotion attributes the booking flow depends on
type PromotionRecord struct {
	ID            int64
	CampaignID    int64
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	ValidFrom     time.Time
	ValidUntil    time.Time
}

// ValidAt reports whether t falls inside the promotion's validity window
func (p PromotionRecord) ValidAt(t time.Time) bool {
	return !t.Before(p.ValidFrom) && !t.After(p.ValidUntil)
}

// Apply returns price after the promotion's discount, rounded to cents and never negative
func (p PromotionRecord) Apply(price decimal.Decimal) decimal.Decimal {
	var discounted decimal.Decimal
	switch p.DiscountType {
	case DiscountPercentage:
		factor := decimal.NewFromInt(1).Sub(p.DiscountValue.Div(decimal.NewFromInt(100)))
		discounted = price.Mul(factor)
	case DiscountFixedAmount:
		discounted = price.Sub(p.DiscountValue)
	default:
		discounted = price
	}

	if discounted.IsNegative() {
		return decimal.Zero
	}
	return RoundMoney(discounted)
}

// BookingRecord is a generated booking header
type BookingRecord struct {
	ID        int64
	BookedAt  time.Time
	Total     decimal.Decimal
	MemberID  int64
	PaymentID int64
}

// TicketRecord is a generated ticket row
type TicketRecord struct {
	ID          int64
	Seat        string
	Status      TicketStatus
	ScheduleID  int64
	PromotionID *int64
}

// BookedTicket is a ticket produced through the booking flow, with the
// attributes refunds and extensions need to stay inside its timeline
type BookedTicket struct {
	TicketID   int64
	BookingID  int64
	ScheduleID int64
	BookedAt   time.Time
	Departure  time.Time
	Price      decimal.Decimal
}

// RefundRecord is a generated refund row
type RefundRecord struct {
	ID       int64
	RefundAt time.Time
	Amount   decimal.Decimal
	Method   string
	TicketID int64
}

// ExtensionRecord is a generated extension row
type ExtensionRecord struct {
	ID         int64
	ExtendedAt time.Time
	Fee        decimal.Decimal
	Method     string
	TicketID   int64
}

// RoundMoney rounds an amount to two decimal places
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
