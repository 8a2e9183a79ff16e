package record_product_sale

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/productsales/models"
)

type ProductSaleService interface {
	Record(ctx context.Context, req *models.RecordRequest) (*models.ProductSaleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
