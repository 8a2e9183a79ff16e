package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewPeriod(t *testing.T) {
	_, err := NewPeriod(day(2026, 3, 8), day(2026, 3, 1))
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = NewPeriod(day(2026, 3, 1), day(2026, 3, 1))
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	p, err := NewPeriod(day(2026, 3, 1), day(2026, 3, 8))
	require.NoError(t, err)
	assert.True(t, p.Contains(day(2026, 3, 1)))
	assert.True(t, p.Contains(day(2026, 3, 7).Add(23*time.Hour)))
	assert.False(t, p.Contains(day(2026, 3, 8)), "end is exclusive")
}

func TestPeriod_Overlaps(t *testing.T) {
	march1to8 := Period{Start: day(2026, 3, 1), End: day(2026, 3, 8)}

	assert.False(t, march1to8.Overlaps(Period{Start: day(2026, 3, 8), End: day(2026, 3, 15)}), "adjacent")
	assert.True(t, march1to8.Overlaps(Period{Start: day(2026, 3, 7), End: day(2026, 3, 15)}))
	assert.True(t, march1to8.Overlaps(Period{Start: day(2026, 2, 1), End: day(2026, 4, 1)}))
}

func TestLastClosedPeriod(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		pp   PaymentPeriod
		now  time.Time
		want Period
	}{
		{"weekly", PaymentPeriodWeekly, sunday, Period{day(2026, 10, 5), day(2026, 10, 12)}},
		{"weekly on monday boundary", PaymentPeriodWeekly, day(2026, 10, 12), Period{day(2026, 10, 5), day(2026, 10, 12)}},
		{"biweekly even week", PaymentPeriodBiweekly, sunday, Period{day(2026, 9, 28), day(2026, 10, 12)}},
		{"biweekly odd week", PaymentPeriodBiweekly, tuesday, Period{day(2026, 9, 28), day(2026, 10, 12)}},
		{"biweekly across 53-week year", PaymentPeriodBiweekly, day(2027, 1, 5), Period{day(2026, 12, 21), day(2027, 1, 4)}},
		{"biweekly after year boundary", PaymentPeriodBiweekly, day(2027, 1, 19), Period{day(2027, 1, 4), day(2027, 1, 18)}},
		{"monthly", PaymentPeriodMonthly, sunday, Period{day(2026, 9, 1), day(2026, 10, 1)}},
		{"monthly january", PaymentPeriodMonthly, day(2026, 1, 15), Period{day(2025, 12, 1), day(2026, 1, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastClosedPeriod(tt.pp, tt.now))
		})
	}
}

func TestLastClosedPeriod_BiweeklyChainsWithoutOverlap(t *testing.T) {
	prev := LastClosedPeriod(PaymentPeriodBiweekly, day(2026, 11, 3))
	for now := day(2026, 11, 4); now.Before(day(2028, 3, 1)); now = now.AddDate(0, 0, 1) {
		cur := LastClosedPeriod(PaymentPeriodBiweekly, now)
		if cur == prev {
			continue
		}
		assert.Equal(t, prev.End, cur.Start, "now=%s", now.Format(DateFormat))
		assert.False(t, cur.Overlaps(prev), "now=%s", now.Format(DateFormat))
		assert.Equal(t, 14*24*time.Hour, cur.End.Sub(cur.Start))
		prev = cur
	}
}
