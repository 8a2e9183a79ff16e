package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// Request модель запроса на создание записи (черновик бронирования целиком)
type Request struct {
	Actor      domain.Actor     // Кто создает запись
	BarberID   int64            // ID барбера
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата записи (используются только год, месяц и день)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	ClientID   *int64           // ID клиента; обязателен, когда записывает барбер или администратор
	ClientName string           // Имя клиента
	Notes      *string          // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ClientID        int64
	ClientName      string
	BarberID        int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
