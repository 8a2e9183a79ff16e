package settle_commissions

import (
	"context"

	settleCommissions "github.com/m04kA/SMC-BarberService/internal/usecase/settle_commissions"
)

type SettleCommissionsUseCase interface {
	Execute(ctx context.Context, req *settleCommissions.Request) (*settleCommissions.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
