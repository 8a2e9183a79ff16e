package domain

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// WorkingWindow is the daily window in which appointments can be booked
type WorkingWindow struct {
	OpenTime           types.TimeString
	CloseTime          types.TimeString
	GranularityMinutes int
	MinNoticeMinutes   int
	Location           *time.Location
}

// DefaultWorkingWindow returns the window used when nothing is configured
func DefaultWorkingWindow() WorkingWindow {
	return WorkingWindow{
		OpenTime:           DefaultOpenTime,
		CloseTime:          DefaultCloseTime,
		GranularityMinutes: DefaultGranularityMinutes,
		MinNoticeMinutes:   DefaultMinNoticeMinutes,
		Location:           time.UTC,
	}
}

// Loc returns the window's time zone, UTC if unset
func (w WorkingWindow) Loc() *time.Location {
	if w.Location == nil {
		return time.UTC
	}
	return w.Location
}

// Candidates yields slot starts from open to close in GranularityMinutes steps,
// keeping only starts where start+duration fits before closing.
// The sequence is computed on every iteration and can be ranged over repeatedly.
func (w WorkingWindow) Candidates(durationMinutes int) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		if w.GranularityMinutes <= 0 || durationMinutes <= 0 {
			return
		}
		open, err := w.OpenTime.Minutes()
		if err != nil {
			return
		}
		closing, err := w.CloseTime.Minutes()
		if err != nil {
			return
		}

		for start := open; start+durationMinutes <= closing; start += w.GranularityMinutes {
			slot, err := types.NewTimeStringFromMinutes(start)
			if err != nil {
				return
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// IsOnGrid reports whether start is one of the window's candidates for durationMinutes
func (w WorkingWindow) IsOnGrid(start types.TimeString, durationMinutes int) bool {
	for candidate := range w.Candidates(durationMinutes) {
		if candidate == start {
			return true
		}
	}
	return false
}

// Day returns midnight of the calendar date in the window's time zone.
// Only the year, month and day of date are used.
func (w WorkingWindow) Day(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, w.Loc())
}

// EarliestStart returns the first instant bookable at now
func (w WorkingWindow) EarliestStart(now time.Time) time.Time {
	return now.Add(time.Duration(w.MinNoticeMinutes) * time.Minute)
}
