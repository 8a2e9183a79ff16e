package models

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// ListAppointmentsRequest запрос на получение записей барбера за период
type ListAppointmentsRequest struct {
	Actor    domain.Actor
	BarberID int64
	From     time.Time // включительно
	To       time.Time // не включительно
	Statuses []domain.AppointmentStatus
}

// AppointmentResponse запись клиента
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"clientId"`
	ClientName      string    `json:"clientName"`
	BarberID        int64     `json:"barberId"`
	ServiceID       int64     `json:"serviceId"`
	Date            time.Time `json:"date"`
	EndDate         time.Time `json:"endDate"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует доменную запись в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		ClientName:      a.ClientName,
		BarberID:        a.BarberID,
		ServiceID:       a.ServiceID,
		Date:            a.Date,
		EndDate:         a.End(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: result, Total: len(result)}
}
