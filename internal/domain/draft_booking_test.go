package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

func TestDraftBookingBuilder_Build(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	draft, err := NewDraftBooking().
		ForBarber(1).
		WithService(2).
		At(start).
		ForClient(3, "  Ivan  ").
		WithNotes(ptr.Ptr("  fade  ")).
		Build()

	require.NoError(t, err)
	assert.Equal(t, int64(1), draft.BarberID)
	assert.Equal(t, int64(2), draft.ServiceID)
	assert.Equal(t, start, draft.Start)
	assert.Equal(t, "Ivan", draft.ClientName)
	require.NotNil(t, draft.Notes)
	assert.Equal(t, "fade", *draft.Notes)
}

func TestDraftBookingBuilder_MissingParts(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		builder *DraftBookingBuilder
	}{
		{"no barber", NewDraftBooking().WithService(2).At(start).ForClient(3, "Ivan")},
		{"no service", NewDraftBooking().ForBarber(1).At(start).ForClient(3, "Ivan")},
		{"no start", NewDraftBooking().ForBarber(1).WithService(2).ForClient(3, "Ivan")},
		{"no client", NewDraftBooking().ForBarber(1).WithService(2).At(start)},
		{"blank name", NewDraftBooking().ForBarber(1).WithService(2).At(start).ForClient(3, "   ")},
		{"long notes", NewDraftBooking().ForBarber(1).WithService(2).At(start).ForClient(3, "Ivan").
			WithNotes(ptr.Ptr(strings.Repeat("x", MaxNotesLength+1)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
