package domain

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

func TestWorkingWindow_Candidates(t *testing.T) {
	w := WorkingWindow{OpenTime: "09:00", CloseTime: "11:00", GranularityMinutes: 30}

	got := slices.Collect(w.Candidates(45))

	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, got)
}

func TestWorkingWindow_CandidatesIsRestartable(t *testing.T) {
	w := DefaultWorkingWindow()
	seq := w.Candidates(30)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Equal(t, first, second)
	assert.Len(t, first, 22)
	assert.Equal(t, types.TimeString("09:00"), first[0])
	assert.Equal(t, types.TimeString("19:30"), first[len(first)-1])
}

func TestWorkingWindow_CandidatesEarlyBreak(t *testing.T) {
	w := DefaultWorkingWindow()

	var got []types.TimeString
	for slot := range w.Candidates(30) {
		got = append(got, slot)
		if len(got) == 2 {
			break
		}
	}

	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, got)
}

func TestWorkingWindow_CandidatesDurationLongerThanDay(t *testing.T) {
	w := WorkingWindow{OpenTime: "09:00", CloseTime: "10:00", GranularityMinutes: 30}

	assert.Empty(t, slices.Collect(w.Candidates(90)))
	assert.Empty(t, slices.Collect(w.Candidates(0)))
}

func TestWorkingWindow_IsOnGrid(t *testing.T) {
	w := DefaultWorkingWindow()

	assert.True(t, w.IsOnGrid("10:30", 30))
	assert.False(t, w.IsOnGrid("10:15", 30))
	assert.False(t, w.IsOnGrid("19:30", 60), "does not fit before closing")
	assert.False(t, w.IsOnGrid("08:30", 30))
}
