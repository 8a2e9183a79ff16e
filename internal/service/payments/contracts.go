package payments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// PaymentRepository интерфейс репозитория выплат
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByBarber(ctx context.Context, barberID int64) ([]*domain.Payment, error)
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) (*domain.Payment, error)
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
