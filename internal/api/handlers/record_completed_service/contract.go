package record_completed_service

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/completedservices/models"
)

type CompletedServiceService interface {
	Record(ctx context.Context, req *models.RecordRequest) (*models.CompletedServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
