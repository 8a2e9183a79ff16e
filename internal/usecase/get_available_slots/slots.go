package get_available_slots

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// freeSlots отбирает из кандидатов слоты, которые начинаются не раньше earliest
// и не пересекаются ни с одной записью барбера
//
// Касание интервалов пересечением не считается:
// - Слот 11:30-12:00, запись 11:00-11:30 → свободен
// - Слот 11:30-12:00, запись 11:45-12:15 → занят
func freeSlots(
	candidates iter.Seq[types.TimeString],
	day time.Time,
	durationMinutes int,
	earliest time.Time,
	appointments []*domain.Appointment,
) []types.TimeString {
	duration := time.Duration(durationMinutes) * time.Minute
	result := make([]types.TimeString, 0)

	for candidate := range candidates {
		start, err := candidate.On(day)
		if err != nil {
			continue
		}
		if start.Before(earliest) {
			continue
		}
		if overlapsAny(start, start.Add(duration), appointments) {
			continue
		}
		result = append(result, candidate)
	}

	return result
}

// overlapsAny проверяет пересечение интервала [start, end) с блокирующими записями
func overlapsAny(start, end time.Time, appointments []*domain.Appointment) bool {
	for _, a := range appointments {
		if a.IsBlocking() && a.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// isDayInPast проверяет, что календарный день целиком в прошлом
func isDayInPast(day, now time.Time) bool {
	y, m, d := now.In(day.Location()).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return day.Before(today)
}
