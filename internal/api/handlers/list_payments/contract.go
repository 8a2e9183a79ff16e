package list_payments

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/payments/models"
)

type PaymentService interface {
	ListByBarber(ctx context.Context, barberID int64, actor domain.Actor) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
