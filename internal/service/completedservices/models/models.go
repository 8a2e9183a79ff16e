package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// RecordRequest запрос на запись выполненной услуги без предварительной записи (walk-in)
type RecordRequest struct {
	Actor      domain.Actor
	BarberID   int64
	ServiceID  int64
	ClientID   *int64
	ClientName string
	Price      decimal.Decimal
	Date       time.Time
}

// ListRequest запрос на получение выполненных услуг барбера
type ListRequest struct {
	Actor           domain.Actor
	BarberID        int64
	From            *time.Time
	To              *time.Time
	UnvalidatedOnly bool
}

// CompletedServiceResponse выполненная услуга
type CompletedServiceResponse struct {
	ID               int64      `json:"id"`
	BarberID         int64      `json:"barberId"`
	ServiceID        int64      `json:"serviceId"`
	ClientID         *int64     `json:"clientId,omitempty"`
	ClientName       string     `json:"clientName"`
	Price            string     `json:"price"`
	Date             time.Time  `json:"date"`
	AppointmentID    *int64     `json:"appointmentId,omitempty"`
	ValidatedByAdmin bool       `json:"validatedByAdmin"`
	ValidatedAt      *time.Time `json:"validatedAt,omitempty"`
	PaymentID        *int64     `json:"paymentId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// CompletedServiceListResponse список выполненных услуг
type CompletedServiceListResponse struct {
	CompletedServices []*CompletedServiceResponse `json:"completedServices"`
	Total             int                         `json:"total"`
}

// FromDomainCompletedService конвертирует доменную выполненную услугу в ответ
func FromDomainCompletedService(cs *domain.CompletedService) *CompletedServiceResponse {
	return &CompletedServiceResponse{
		ID:               cs.ID,
		BarberID:         cs.BarberID,
		ServiceID:        cs.ServiceID,
		ClientID:         cs.ClientID,
		ClientName:       cs.ClientName,
		Price:            cs.Price.StringFixed(2),
		Date:             cs.Date,
		AppointmentID:    cs.AppointmentID,
		ValidatedByAdmin: cs.ValidatedByAdmin,
		ValidatedAt:      cs.ValidatedAt,
		PaymentID:        cs.PaymentID,
		CreatedAt:        cs.CreatedAt,
	}
}

// FromDomainCompletedServiceList конвертирует список выполненных услуг
func FromDomainCompletedServiceList(list []*domain.CompletedService) *CompletedServiceListResponse {
	result := make([]*CompletedServiceResponse, 0, len(list))
	for _, cs := range list {
		result = append(result, FromDomainCompletedService(cs))
	}
	return &CompletedServiceListResponse{CompletedServices: result, Total: len(result)}
}
