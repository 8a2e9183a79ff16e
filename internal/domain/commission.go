package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Commission is a barber's percentage for a specific service
type Commission struct {
	BarberID   int64
	ServiceID  int64
	Percentage decimal.Decimal
}

// ValidatePercentage checks that p is within [0, 100]
func ValidatePercentage(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return fmt.Errorf("%w: percentage %s is outside [0, 100]", ErrInvalidInput, p.String())
	}
	return nil
}

// CommissionTable holds one barber's commission overrides and the default percentage
type CommissionTable struct {
	defaultPercent decimal.Decimal
	byService      map[int64]decimal.Decimal
}

// NewCommissionTable builds a table from stored overrides
func NewCommissionTable(defaultPercent decimal.Decimal, overrides []*Commission) *CommissionTable {
	t := &CommissionTable{
		defaultPercent: defaultPercent,
		byService:      make(map[int64]decimal.Decimal, len(overrides)),
	}
	for _, c := range overrides {
		t.byService[c.ServiceID] = c.Percentage
	}
	return t
}

// EffectivePercentage is the single place the default commission is applied
func (t *CommissionTable) EffectivePercentage(serviceID int64) decimal.Decimal {
	if p, ok := t.byService[serviceID]; ok {
		return p
	}
	return t.defaultPercent
}

// Cut returns the barber's unrounded cut of a service price
func (t *CommissionTable) Cut(serviceID int64, price decimal.Decimal) decimal.Decimal {
	return CommissionCut(price, t.EffectivePercentage(serviceID))
}

// CommissionCut returns amount * percent / 100 without rounding
func CommissionCut(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}

// RoundAmount rounds half away from zero to cents.
// Amounts are only rounded once, when a total is produced.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
