package settle_commissions

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	settleCommissions "github.com/m04kA/SMC-BarberService/internal/usecase/settle_commissions"
)

// SettleRequest HTTP request model
// Период полуоткрытый: [periodStart, periodEnd)
type SettleRequest struct {
	PeriodStart string  `json:"periodStart" validate:"required"`
	PeriodEnd   string  `json:"periodEnd" validate:"required"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	SkipEmpty   bool    `json:"skipEmpty,omitempty"` // не создавать нулевую выплату
}

// SkippedResponse ответ, когда выплата не создавалась
type SkippedResponse struct {
	Skipped  bool   `json:"skipped"`
	BarberID int64  `json:"barberId"`
	Reason   string `json:"reason"`
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	ID                int64   `json:"id"`
	BarberID          int64   `json:"barberId"`
	Amount            string  `json:"amount"`
	PeriodStart       string  `json:"periodStart"`
	PeriodEnd         string  `json:"periodEnd"`
	Status            string  `json:"status"`
	ServicesCount     int     `json:"servicesCount"`
	ProductSalesCount int     `json:"productSalesCount"`
	Notes             *string `json:"notes,omitempty"`
	CreatedAt         string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SettleRequest) ToUseCaseRequest(actor domain.Actor, barberID int64) (*settleCommissions.Request, error) {
	start, err := handlers.ParseTime(r.PeriodStart)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseTime(r.PeriodEnd)
	if err != nil {
		return nil, err
	}

	return &settleCommissions.Request{
		Actor:       actor,
		BarberID:    barberID,
		PeriodStart: start,
		PeriodEnd:   end,
		SkipEmpty:   r.SkipEmpty,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *settleCommissions.Response) *PaymentResponse {
	return &PaymentResponse{
		ID:                resp.PaymentID,
		BarberID:          resp.BarberID,
		Amount:            resp.Amount.StringFixed(2),
		PeriodStart:       resp.PeriodStart.Format(time.RFC3339),
		PeriodEnd:         resp.PeriodEnd.Format(time.RFC3339),
		Status:            resp.Status,
		ServicesCount:     resp.ServicesCount,
		ProductSalesCount: resp.ProductSalesCount,
		Notes:             resp.Notes,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
