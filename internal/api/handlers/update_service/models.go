package update_service

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

// UpdateServiceRequest HTTP request model
// Все поля опциональны, передаются только изменяемые
type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DurationMinutes *int             `json:"durationMinutes,omitempty" validate:"omitempty,min=5,max=480"`
	IsActive        *bool            `json:"isActive,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateServiceRequest) ToServiceRequest(actor domain.Actor) *models.UpdateServiceRequest {
	return &models.UpdateServiceRequest{
		Actor:           actor,
		Name:            r.Name,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		IsActive:        r.IsActive,
	}
}
