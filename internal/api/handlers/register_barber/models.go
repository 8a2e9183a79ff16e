package register_barber

import (
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

// RegisterBarberRequest HTTP request model
type RegisterBarberRequest struct {
	InviteToken   string `json:"inviteToken" validate:"required"`
	Name          string `json:"name" validate:"required,max=255"`
	PaymentPeriod string `json:"paymentPeriod,omitempty" validate:"omitempty,oneof=weekly biweekly monthly"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RegisterBarberRequest) ToServiceRequest(actor domain.Actor) *models.RegisterBarberRequest {
	return &models.RegisterBarberRequest{
		Actor:         actor,
		InviteToken:   r.InviteToken,
		Name:          r.Name,
		PaymentPeriod: domain.PaymentPeriod(r.PaymentPeriod),
	}
}
