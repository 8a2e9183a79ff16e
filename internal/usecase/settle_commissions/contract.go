package settle_commissions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// PaymentRepository интерфейс репозитория выплат
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	ExistsOverlapping(ctx context.Context, barberID int64, period domain.Period) (bool, error)
}

// CompletedServiceRepository интерфейс репозитория выполненных услуг
type CompletedServiceRepository interface {
	ListUnsettled(ctx context.Context, barberID int64, before time.Time) ([]*domain.CompletedService, error)
	ClaimForPayment(ctx context.Context, ids []int64, paymentID int64) (int64, error)
}

// ProductSaleRepository интерфейс репозитория продаж товаров
type ProductSaleRepository interface {
	ListUnsettled(ctx context.Context, barberID int64, before time.Time) ([]*domain.ProductSale, error)
	ClaimForPayment(ctx context.Context, ids []int64, paymentID int64) (int64, error)
}

// CommissionProvider возвращает таблицу процентов барбера
type CommissionProvider interface {
	CommissionTable(ctx context.Context, barberID int64) (*domain.CommissionTable, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики расчетов
type Metrics interface {
	ObserveSettlement(outcome string, amount float64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
