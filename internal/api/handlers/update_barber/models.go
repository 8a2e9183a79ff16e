package update_barber

import (
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

// UpdateBarberRequest HTTP request model
// visibleBarberIds учитывается только при calendarVisibility = selected
type UpdateBarberRequest struct {
	Name               *string `json:"name,omitempty" validate:"omitempty,max=255"`
	PaymentPeriod      *string `json:"paymentPeriod,omitempty" validate:"omitempty,oneof=weekly biweekly monthly"`
	IsActive           *bool   `json:"isActive,omitempty"`
	CalendarVisibility *string `json:"calendarVisibility,omitempty" validate:"omitempty,oneof=own all selected"`
	VisibleBarberIDs   []int64 `json:"visibleBarberIds,omitempty" validate:"omitempty,dive,gt=0"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBarberRequest) ToServiceRequest(actor domain.Actor) *models.UpdateBarberRequest {
	req := &models.UpdateBarberRequest{
		Actor:            actor,
		Name:             r.Name,
		IsActive:         r.IsActive,
		VisibleBarberIDs: r.VisibleBarberIDs,
	}

	if r.PaymentPeriod != nil {
		period := domain.PaymentPeriod(*r.PaymentPeriod)
		req.PaymentPeriod = &period
	}
	if r.CalendarVisibility != nil {
		visibility := domain.CalendarVisibility(*r.CalendarVisibility)
		req.CalendarVisibility = &visibility
	}

	return req
}
