package productsales

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// ProductSaleRepository интерфейс репозитория продаж товаров
type ProductSaleRepository interface {
	Create(ctx context.Context, sale *domain.ProductSale) (*domain.ProductSale, error)
	GetByID(ctx context.Context, id int64) (*domain.ProductSale, error)
	List(ctx context.Context, filter domain.RecordFilter) ([]*domain.ProductSale, error)
	MarkValidated(ctx context.Context, id int64) (*domain.ProductSale, error)
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
