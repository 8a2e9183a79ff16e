package autosettle

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	settleCommissions "github.com/m04kA/SMC-BarberService/internal/usecase/settle_commissions"
)

// BarberRepository источник активных барберов
type BarberRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Barber, error)
}

// SettleUseCase расчет выплаты за период
type SettleUseCase interface {
	Execute(ctx context.Context, req *settleCommissions.Request) (*settleCommissions.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
