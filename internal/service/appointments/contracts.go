package appointments

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Barber, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Barber, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
