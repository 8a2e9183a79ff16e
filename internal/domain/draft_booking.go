package domain

import (
	"fmt"
	"strings"
	"time"
)

// DraftBooking is a complete booking request assembled on the client and
// validated atomically on the server.
type DraftBooking struct {
	BarberID   int64
	ServiceID  int64
	Start      time.Time
	ClientID   int64
	ClientName string
	Notes      *string
}

// DraftBookingBuilder assembles a DraftBooking step by step
type DraftBookingBuilder struct {
	draft DraftBooking
}

// NewDraftBooking starts a new draft
func NewDraftBooking() *DraftBookingBuilder {
	return &DraftBookingBuilder{}
}

func (b *DraftBookingBuilder) ForBarber(barberID int64) *DraftBookingBuilder {
	b.draft.BarberID = barberID
	return b
}

func (b *DraftBookingBuilder) WithService(serviceID int64) *DraftBookingBuilder {
	b.draft.ServiceID = serviceID
	return b
}

func (b *DraftBookingBuilder) At(start time.Time) *DraftBookingBuilder {
	b.draft.Start = start
	return b
}

func (b *DraftBookingBuilder) ForClient(clientID int64, clientName string) *DraftBookingBuilder {
	b.draft.ClientID = clientID
	b.draft.ClientName = strings.TrimSpace(clientName)
	return b
}

func (b *DraftBookingBuilder) WithNotes(notes *string) *DraftBookingBuilder {
	if notes != nil {
		trimmed := strings.TrimSpace(*notes)
		if trimmed != "" {
			b.draft.Notes = &trimmed
		}
	}
	return b
}

// Build checks that every required part is present
func (b *DraftBookingBuilder) Build() (DraftBooking, error) {
	d := b.draft
	switch {
	case d.BarberID <= 0:
		return DraftBooking{}, fmt.Errorf("%w: barber is required", ErrInvalidInput)
	case d.ServiceID <= 0:
		return DraftBooking{}, fmt.Errorf("%w: service is required", ErrInvalidInput)
	case d.Start.IsZero():
		return DraftBooking{}, fmt.Errorf("%w: start time is required", ErrInvalidInput)
	case d.ClientID <= 0:
		return DraftBooking{}, fmt.Errorf("%w: client is required", ErrInvalidInput)
	case d.ClientName == "":
		return DraftBooking{}, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	case d.Notes != nil && len([]rune(*d.Notes)) > MaxNotesLength:
		return DraftBooking{}, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, MaxNotesLength)
	}
	return d, nil
}
