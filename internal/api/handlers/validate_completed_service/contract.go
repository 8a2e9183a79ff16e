package validate_completed_service

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/completedservices/models"
)

type CompletedServiceService interface {
	Validate(ctx context.Context, id int64, actor domain.Actor) (*models.CompletedServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
