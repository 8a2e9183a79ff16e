package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a commission payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Payment is a commission payout for one barber and one period
type Payment struct {
	ID                int64
	BarberID          int64
	Amount            decimal.Decimal
	PeriodStart       time.Time
	PeriodEnd         time.Time
	Status            PaymentStatus
	PaymentDate       *time.Time
	Notes             *string
	ServicesCount     int
	ProductSalesCount int
	CreatedAt         time.Time
}

// Period returns the settled interval
func (p *Payment) Period() Period {
	return Period{Start: p.PeriodStart, End: p.PeriodEnd}
}

// IsPaid returns true once the payout was made
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// Period is a half-open interval [Start, End)
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod validates that end is after start
func NewPeriod(start, end time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, fmt.Errorf("%w: period bounds are required", ErrInvalidPeriod)
	}
	if !end.After(start) {
		return Period{}, fmt.Errorf("%w: period end %s is not after start %s",
			ErrInvalidPeriod, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return Period{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the period
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Overlaps reports whether two half-open periods intersect.
// Adjacent periods do not overlap.
func (p Period) Overlaps(other Period) bool {
	return p.Start.Before(other.End) && p.End.After(other.Start)
}

// LastClosedPeriod returns the most recent period of kind pp that ended at or before now.
// Weeks start on Monday; biweekly periods are counted in two-week steps from biweeklyEpoch.
func LastClosedPeriod(pp PaymentPeriod, now time.Time) Period {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch pp {
	case PaymentPeriodMonthly:
		end := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		return Period{Start: end.AddDate(0, -1, 0), End: end}

	case PaymentPeriodBiweekly:
		end := startOfWeek(today)
		if weeksSince(biweeklyEpoch, end)%2 != 0 {
			end = end.AddDate(0, 0, -7)
		}
		return Period{Start: end.AddDate(0, 0, -14), End: end}

	default:
		end := startOfWeek(today)
		return Period{Start: end.AddDate(0, 0, -7), End: end}
	}
}

// biweeklyEpoch is the Monday biweekly periods are aligned to
var biweeklyEpoch = time.Date(1970, 1, 5, 0, 0, 0, 0, time.UTC)

// weeksSince counts whole weeks between epoch and the calendar date of day.
// The date is taken in day's location so DST shifts do not matter.
func weeksSince(epoch, day time.Time) int {
	y, m, d := day.Date()
	days := int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Sub(epoch).Hours() / 24)
	return days / 7
}

// startOfWeek returns Monday 00:00 of the week containing day
func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
