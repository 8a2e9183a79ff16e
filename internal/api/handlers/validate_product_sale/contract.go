package validate_product_sale

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/productsales/models"
)

type ProductSaleService interface {
	Validate(ctx context.Context, id int64, actor domain.Actor) (*models.ProductSaleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
