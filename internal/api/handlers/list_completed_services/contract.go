package list_completed_services

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/completedservices/models"
)

type CompletedServiceService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.CompletedServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
