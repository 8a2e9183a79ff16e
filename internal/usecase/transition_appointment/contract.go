package transition_appointment

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.AppointmentStatus) (*domain.Appointment, error)
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// CompletedServiceRecorder создает выполненную услугу по завершенной записи
type CompletedServiceRecorder interface {
	RecordFromAppointment(ctx context.Context, appointment *domain.Appointment, service *domain.Service) (*domain.CompletedService, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики переходов статусов
type Metrics interface {
	IncAppointmentTransition(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
