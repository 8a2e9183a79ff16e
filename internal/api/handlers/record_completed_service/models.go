package record_completed_service

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/completedservices/models"
)

// RecordCompletedServiceRequest HTTP request model
// price принимается строкой ("25.00") или числом
type RecordCompletedServiceRequest struct {
	BarberID   int64           `json:"barberId" validate:"required,gt=0"`
	ServiceID  int64           `json:"serviceId" validate:"required,gt=0"`
	ClientID   *int64          `json:"clientId,omitempty" validate:"omitempty,gt=0"`
	ClientName string          `json:"clientName" validate:"required,max=255"`
	Price      decimal.Decimal `json:"price"`
	Date       string          `json:"date" validate:"required"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RecordCompletedServiceRequest) ToServiceRequest(actor domain.Actor) (*models.RecordRequest, error) {
	date, err := handlers.ParseTime(r.Date)
	if err != nil {
		return nil, err
	}

	return &models.RecordRequest{
		Actor:      actor,
		BarberID:   r.BarberID,
		ServiceID:  r.ServiceID,
		ClientID:   r.ClientID,
		ClientName: r.ClientName,
		Price:      r.Price,
		Date:       date,
	}, nil
}
