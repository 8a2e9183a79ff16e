package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid morning", input: "09:00"},
		{name: "end of day boundary", input: "24:00"},
		{name: "missing colon", input: "0900", wantErr: ErrInvalidTimeFormat},
		{name: "letters", input: "ab:cd", wantErr: ErrInvalidTimeFormat},
		{name: "minutes overflow", input: "10:60", wantErr: ErrTimeOutOfRange},
		{name: "past end of day", input: "24:30", wantErr: ErrTimeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("19:30")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("20:00"), next)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("bad").IsAfter("09:00"))
}

func TestTimeString_On(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("14:30").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC), at)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("08:15:00"))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan([]byte("12:00")))
	assert.Equal(t, TimeString("12:00"), ts)

	assert.Error(t, ts.Scan(42))
}
