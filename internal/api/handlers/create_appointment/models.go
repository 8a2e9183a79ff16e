package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	createAppointment "github.com/m04kA/SMC-BarberService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BarberID   int64   `json:"barberId" validate:"required,gt=0"`
	ServiceID  int64   `json:"serviceId" validate:"required,gt=0"`
	Date       string  `json:"date" validate:"required"`      // "2025-10-15"
	StartTime  string  `json:"startTime" validate:"required"` // "10:00"
	ClientID   *int64  `json:"clientId,omitempty" validate:"omitempty,gt=0"`
	ClientName string  `json:"clientName" validate:"max=255"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	ClientName      string  `json:"clientName"`
	BarberID        int64   `json:"barberId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(actor domain.Actor) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Actor:      actor,
		BarberID:   r.BarberID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		ClientID:   r.ClientID,
		ClientName: r.ClientName,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ClientName:      resp.ClientName,
		BarberID:        resp.BarberID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
