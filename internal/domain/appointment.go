package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// IsValid reports whether s is a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// allowedTransitions is the appointment state machine
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
}

// CanTransition reports whether the state machine allows from -> to
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// BlockingStatuses are statuses whose appointments occupy the barber's time
var BlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// Appointment is a client's booking with a barber
type Appointment struct {
	ID              int64
	ClientID        int64
	ClientName      string
	BarberID        int64
	ServiceID       int64
	Date            time.Time // start instant
	DurationMinutes int       // snapshot of the service duration at booking time
	Status          AppointmentStatus
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// End returns the instant the appointment ends
func (a *Appointment) End() time.Time {
	return a.Date.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsBlocking returns true if the appointment occupies its time slot
func (a *Appointment) IsBlocking() bool {
	return a.Status != StatusCanceled
}

// Overlaps reports whether [start, end) intersects the appointment.
// Touching intervals do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.Date.Before(end) && a.End().After(start)
}

// CanTransitionTo reports whether the appointment may move to target
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	return CanTransition(a.Status, target)
}

// AppointmentFilter selects appointments of a barber
type AppointmentFilter struct {
	BarberID int64
	From     *time.Time          // inclusive
	To       *time.Time          // exclusive
	Statuses []AppointmentStatus // empty means any status
}
