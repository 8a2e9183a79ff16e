package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSale is a retail sale made by a barber
type ProductSale struct {
	ID                int64
	BarberID          int64
	ProductName       string
	Quantity          int
	UnitPrice         decimal.Decimal
	CommissionPercent decimal.Decimal // snapshot at recording time
	Date              time.Time
	ValidatedByAdmin  bool
	ValidatedAt       *time.Time
	PaymentID         *int64
	CreatedAt         time.Time
}

// Total returns unit price times quantity
func (p *ProductSale) Total() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Commission returns the barber's unrounded cut of the sale
func (p *ProductSale) Commission() decimal.Decimal {
	return CommissionCut(p.Total(), p.CommissionPercent)
}
