package catalog

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/integrations/inviteservice"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
	Update(ctx context.Context, id int64, update domain.ServiceUpdate) (*domain.Service, error)
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	Create(ctx context.Context, barber *domain.Barber) (*domain.Barber, error)
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Barber, error)
	Update(ctx context.Context, id int64, update domain.BarberUpdate) (*domain.Barber, error)
}

// CommissionRepository интерфейс репозитория процентов комиссии
type CommissionRepository interface {
	Upsert(ctx context.Context, commission *domain.Commission) error
	GetByBarber(ctx context.Context, barberID int64) ([]*domain.Commission, error)
}

// InviteServiceClient интерфейс клиента сервиса приглашений
type InviteServiceClient interface {
	Validate(ctx context.Context, token string) (*inviteservice.Invite, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
