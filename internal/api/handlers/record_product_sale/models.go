package record_product_sale

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/productsales/models"
)

// RecordProductSaleRequest HTTP request model
type RecordProductSaleRequest struct {
	BarberID    int64           `json:"barberId" validate:"required,gt=0"`
	ProductName string          `json:"productName" validate:"required,max=255"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Date        string          `json:"date" validate:"required"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RecordProductSaleRequest) ToServiceRequest(actor domain.Actor) (*models.RecordRequest, error) {
	date, err := handlers.ParseTime(r.Date)
	if err != nil {
		return nil, err
	}

	return &models.RecordRequest{
		Actor:       actor,
		BarberID:    r.BarberID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Date:        date,
	}, nil
}
