package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry a barber performs
type Service struct {
	ID              int64
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServiceUpdate is a partial update of a catalog service.
// Nil fields are left unchanged.
type ServiceUpdate struct {
	Name            *string
	Price           *decimal.Decimal
	DurationMinutes *int
	IsActive        *bool
}

// IsEmpty returns true if nothing is to be updated
func (u ServiceUpdate) IsEmpty() bool {
	return u.Name == nil && u.Price == nil && u.DurationMinutes == nil && u.IsActive == nil
}
