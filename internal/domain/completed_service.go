package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompletedService records a service that was actually performed.
// Price is a snapshot taken at creation and never changes.
type CompletedService struct {
	ID               int64
	BarberID         int64
	ServiceID        int64
	ClientID         *int64 // nil for walk-in clients without an account
	ClientName       string
	Price            decimal.Decimal
	Date             time.Time
	AppointmentID    *int64 // set only when derived from a completed appointment
	ValidatedByAdmin bool
	ValidatedAt      *time.Time
	PaymentID        *int64 // set when claimed by a settlement
	CreatedAt        time.Time
}

// IsSettled returns true once a payment has claimed the record
func (c *CompletedService) IsSettled() bool {
	return c.PaymentID != nil
}

// RecordFilter selects a barber's completed services or product sales
type RecordFilter struct {
	BarberID        int64
	From            *time.Time // inclusive
	To              *time.Time // exclusive
	UnvalidatedOnly bool
}
