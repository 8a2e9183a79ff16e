package calendar_scope

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

type CatalogService interface {
	CalendarScope(ctx context.Context, actor domain.Actor, barberID int64) (*models.CalendarScopeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
