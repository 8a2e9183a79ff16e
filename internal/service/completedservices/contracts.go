package completedservices

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// CompletedServiceRepository интерфейс репозитория выполненных услуг
type CompletedServiceRepository interface {
	Create(ctx context.Context, cs *domain.CompletedService) (*domain.CompletedService, error)
	GetByID(ctx context.Context, id int64) (*domain.CompletedService, error)
	List(ctx context.Context, filter domain.RecordFilter) ([]*domain.CompletedService, error)
	MarkValidated(ctx context.Context, id int64) (*domain.CompletedService, error)
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
