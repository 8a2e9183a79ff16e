package create_service

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name            string          `json:"name" validate:"required,max=255"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes" validate:"required,min=5,max=480"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateServiceRequest) ToServiceRequest(actor domain.Actor) *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		Actor:           actor,
		Name:            r.Name,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
	}
}
