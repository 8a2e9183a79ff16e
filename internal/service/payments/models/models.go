package models

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// PaymentResponse выплата барберу
type PaymentResponse struct {
	ID                int64      `json:"id"`
	BarberID          int64      `json:"barberId"`
	Amount            string     `json:"amount"`
	PeriodStart       time.Time  `json:"periodStart"`
	PeriodEnd         time.Time  `json:"periodEnd"`
	Status            string     `json:"status"`
	PaymentDate       *time.Time `json:"paymentDate,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
	ServicesCount     int        `json:"servicesCount"`
	ProductSalesCount int        `json:"productSalesCount"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// PaymentListResponse список выплат
type PaymentListResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int                `json:"total"`
}

// FromDomainPayment конвертирует доменную выплату в ответ
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:                p.ID,
		BarberID:          p.BarberID,
		Amount:            p.Amount.StringFixed(2),
		PeriodStart:       p.PeriodStart,
		PeriodEnd:         p.PeriodEnd,
		Status:            string(p.Status),
		PaymentDate:       p.PaymentDate,
		Notes:             p.Notes,
		ServicesCount:     p.ServicesCount,
		ProductSalesCount: p.ProductSalesCount,
		CreatedAt:         p.CreatedAt,
	}
}

// FromDomainPaymentList конвертирует список выплат
func FromDomainPaymentList(list []*domain.Payment) *PaymentListResponse {
	result := make([]*PaymentResponse, 0, len(list))
	for _, p := range list {
		result = append(result, FromDomainPayment(p))
	}
	return &PaymentListResponse{Payments: result, Total: len(result)}
}
