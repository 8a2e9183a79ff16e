package domain

import (
	"slices"
	"time"
)

// PaymentPeriod is how often a barber's commission is settled
type PaymentPeriod string

const (
	PaymentPeriodWeekly   PaymentPeriod = "weekly"
	PaymentPeriodBiweekly PaymentPeriod = "biweekly"
	PaymentPeriodMonthly  PaymentPeriod = "monthly"
)

// IsValid reports whether p is a known payment period
func (p PaymentPeriod) IsValid() bool {
	switch p {
	case PaymentPeriodWeekly, PaymentPeriodBiweekly, PaymentPeriodMonthly:
		return true
	}
	return false
}

// CalendarVisibility controls whose calendars a barber may see
type CalendarVisibility string

const (
	CalendarVisibilityOwn      CalendarVisibility = "own"
	CalendarVisibilityAll      CalendarVisibility = "all"
	CalendarVisibilitySelected CalendarVisibility = "selected"
)

// IsValid reports whether v is a known visibility mode
func (v CalendarVisibility) IsValid() bool {
	switch v {
	case CalendarVisibilityOwn, CalendarVisibilityAll, CalendarVisibilitySelected:
		return true
	}
	return false
}

// Barber is a staff member who performs services
type Barber struct {
	ID                 int64
	UserID             int64 // identity provider user id
	Name               string
	PaymentPeriod      PaymentPeriod
	IsActive           bool
	CalendarVisibility CalendarVisibility
	VisibleBarberIDs   []int64 // used only with CalendarVisibilitySelected
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsBookable returns true if clients may book this barber
func (b *Barber) IsBookable() bool {
	return b != nil && b.IsActive
}

// CalendarScope returns the ids of barbers whose calendars this barber may see.
// activeBarberIDs is the full list of active barbers, used for CalendarVisibilityAll.
// The barber's own id is always included.
func (b *Barber) CalendarScope(activeBarberIDs []int64) []int64 {
	var scope []int64
	switch b.CalendarVisibility {
	case CalendarVisibilityAll:
		scope = slices.Clone(activeBarberIDs)
	case CalendarVisibilitySelected:
		scope = slices.Clone(b.VisibleBarberIDs)
	default:
		scope = []int64{}
	}

	if !slices.Contains(scope, b.ID) {
		scope = append(scope, b.ID)
	}
	slices.Sort(scope)
	return slices.Compact(scope)
}

// BarberUpdate is a partial update of a barber profile.
// Nil fields are left unchanged.
type BarberUpdate struct {
	Name               *string
	PaymentPeriod      *PaymentPeriod
	IsActive           *bool
	CalendarVisibility *CalendarVisibility
	VisibleBarberIDs   []int64 // replaced only when CalendarVisibility is set
}

// IsEmpty returns true if nothing is to be updated
func (u BarberUpdate) IsEmpty() bool {
	return u.Name == nil && u.PaymentPeriod == nil && u.IsActive == nil && u.CalendarVisibility == nil
}
