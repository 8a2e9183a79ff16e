package get_payment

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/payments/models"
)

type PaymentService interface {
	GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
