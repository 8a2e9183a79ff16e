package set_commission

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

// SetCommissionRequest HTTP request model
// percentage в диапазоне 0..100, строкой или числом
type SetCommissionRequest struct {
	Percentage decimal.Decimal `json:"percentage"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetCommissionRequest) ToServiceRequest(actor domain.Actor, barberID, serviceID int64) *models.SetCommissionRequest {
	return &models.SetCommissionRequest{
		Actor:      actor,
		BarberID:   barberID,
		ServiceID:  serviceID,
		Percentage: r.Percentage,
	}
}
