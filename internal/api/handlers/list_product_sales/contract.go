package list_product_sales

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/productsales/models"
)

type ProductSaleService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.ProductSaleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
