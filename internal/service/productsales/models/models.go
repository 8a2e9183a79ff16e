package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// RecordRequest запрос на запись продажи товара
type RecordRequest struct {
	Actor       domain.Actor
	BarberID    int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Date        time.Time
}

// ListRequest запрос на получение продаж барбера
type ListRequest struct {
	Actor           domain.Actor
	BarberID        int64
	From            *time.Time
	To              *time.Time
	UnvalidatedOnly bool
}

// ProductSaleResponse продажа товара
type ProductSaleResponse struct {
	ID                int64      `json:"id"`
	BarberID          int64      `json:"barberId"`
	ProductName       string     `json:"productName"`
	Quantity          int        `json:"quantity"`
	UnitPrice         string     `json:"unitPrice"`
	Total             string     `json:"total"`
	CommissionPercent string     `json:"commissionPercent"`
	Date              time.Time  `json:"date"`
	ValidatedByAdmin  bool       `json:"validatedByAdmin"`
	ValidatedAt       *time.Time `json:"validatedAt,omitempty"`
	PaymentID         *int64     `json:"paymentId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// ProductSaleListResponse список продаж
type ProductSaleListResponse struct {
	ProductSales []*ProductSaleResponse `json:"productSales"`
	Total        int                    `json:"total"`
}

// FromDomainProductSale конвертирует доменную продажу в ответ
func FromDomainProductSale(p *domain.ProductSale) *ProductSaleResponse {
	return &ProductSaleResponse{
		ID:                p.ID,
		BarberID:          p.BarberID,
		ProductName:       p.ProductName,
		Quantity:          p.Quantity,
		UnitPrice:         p.UnitPrice.StringFixed(2),
		Total:             domain.RoundAmount(p.Total()).StringFixed(2),
		CommissionPercent: p.CommissionPercent.StringFixed(2),
		Date:              p.Date,
		ValidatedByAdmin:  p.ValidatedByAdmin,
		ValidatedAt:       p.ValidatedAt,
		PaymentID:         p.PaymentID,
		CreatedAt:         p.CreatedAt,
	}
}

// FromDomainProductSaleList конвертирует список продаж
func FromDomainProductSaleList(list []*domain.ProductSale) *ProductSaleListResponse {
	result := make([]*ProductSaleResponse, 0, len(list))
	for _, p := range list {
		result = append(result, FromDomainProductSale(p))
	}
	return &ProductSaleListResponse{ProductSales: result, Total: len(result)}
}
