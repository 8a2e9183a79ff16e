package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса на получение доступных слотов
// Длительность задается напрямую или берется из услуги
type Request struct {
	BarberID        int64     // ID барбера
	Date            time.Time // Дата (используются только год, месяц и день)
	ServiceID       *int64    // ID услуги (опционально)
	DurationMinutes *int      // Длительность в минутах (опционально, приоритетнее услуги)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	BarberID        int64              // ID барбера
	DurationMinutes int                // Длительность, по которой считались слоты
	Slots           []types.TimeString // Время начала свободных слотов по возрастанию
}
