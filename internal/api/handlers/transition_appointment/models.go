package transition_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-BarberService/internal/usecase/transition_appointment"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed canceled"`
}

// TransitionResponse HTTP response model
type TransitionResponse struct {
	ID                 int64   `json:"id"`
	ClientID           int64   `json:"clientId"`
	ClientName         string  `json:"clientName"`
	BarberID           int64   `json:"barberId"`
	ServiceID          int64   `json:"serviceId"`
	Date               string  `json:"date"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	PreviousStatus     string  `json:"previousStatus"`
	Notes              *string `json:"notes,omitempty"`
	CompletedServiceID *int64  `json:"completedServiceId,omitempty"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(actor domain.Actor, appointmentID int64) *transitionAppointment.Request {
	return &transitionAppointment.Request{
		Actor:         actor,
		AppointmentID: appointmentID,
		TargetStatus:  domain.AppointmentStatus(r.Status),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionAppointment.Response) *TransitionResponse {
	return &TransitionResponse{
		ID:                 resp.ID,
		ClientID:           resp.ClientID,
		ClientName:         resp.ClientName,
		BarberID:           resp.BarberID,
		ServiceID:          resp.ServiceID,
		Date:               resp.Date.Format(time.RFC3339),
		DurationMinutes:    resp.DurationMinutes,
		Status:             resp.Status,
		PreviousStatus:     resp.PreviousStatus,
		Notes:              resp.Notes,
		CompletedServiceID: resp.CompletedServiceID,
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
