package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

// Service сервис каталога: услуги, барберы и проценты комиссии
type Service struct {
	serviceRepo    ServiceRepository
	barberRepo     BarberRepository
	commissionRepo CommissionRepository
	inviteClient   InviteServiceClient
	defaultPercent decimal.Decimal
	logger         Logger
}

// NewService создает новый экземпляр сервиса каталога
// defaultPercent - процент барбера для услуг без явной настройки
func NewService(
	serviceRepo ServiceRepository,
	barberRepo BarberRepository,
	commissionRepo CommissionRepository,
	inviteClient InviteServiceClient,
	defaultPercent decimal.Decimal,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:    serviceRepo,
		barberRepo:     barberRepo,
		commissionRepo: commissionRepo,
		inviteClient:   inviteClient,
		defaultPercent: defaultPercent,
		logger:         logger,
	}
}

// ============================================================
// Услуги
// ============================================================

// CreateService создает услугу (только администратор)
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: name=%q, price=%s, duration=%d by user=%d",
		req.Name, req.Price.String(), req.DurationMinutes, req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("CreateService: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	name := strings.TrimSpace(req.Name)
	if err := validateServiceData(&name, &req.Price, &req.DurationMinutes); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		Name:            name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	})
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// UpdateService обновляет услугу (только администратор)
// Уже записанные выполненные услуги хранят свою цену и не меняются
func (s *Service) UpdateService(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: id=%d by user=%d", id, req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("UpdateService: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	update := domain.ServiceUpdate{
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive,
	}
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}
	if err := validateServiceData(update.Name, update.Price, update.DurationMinutes); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateService: updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// ListServices получает список услуг
func (s *Service) ListServices(ctx context.Context, activeOnly bool) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d services (activeOnly=%t)", len(services), activeOnly)
	return models.FromDomainServiceList(services), nil
}

// ============================================================
// Барберы
// ============================================================

// RegisterBarber регистрирует барбера по токену приглашения
// Барбер привязывается к владельцу приглашения; зарегистрироваться может только он сам или администратор
func (s *Service) RegisterBarber(ctx context.Context, req *models.RegisterBarberRequest) (*models.BarberResponse, error) {
	s.logger.Info("RegisterBarber: name=%q by user=%d", req.Name, req.Actor.UserID)

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	period := req.PaymentPeriod
	if period == "" {
		period = domain.PaymentPeriodWeekly
	}
	if !period.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment period %q", ErrInvalidInput, period)
	}

	invite, err := s.inviteClient.Validate(ctx, req.InviteToken)
	if err != nil {
		s.logger.Error("RegisterBarber: invite validation failed: %v", err)
		return nil, fmt.Errorf("%w: RegisterBarber - invite service: %w", ErrInternal, err)
	}
	if !invite.Valid {
		s.logger.Warn("RegisterBarber: invalid invite token used by user=%d", req.Actor.UserID)
		return nil, ErrInvalidInvite
	}
	if !req.Actor.IsAdmin() && req.Actor.UserID != invite.OwnerID {
		s.logger.Warn("RegisterBarber: user=%d tried to use invite of user=%d", req.Actor.UserID, invite.OwnerID)
		return nil, ErrAccessDenied
	}

	created, err := s.barberRepo.Create(ctx, &domain.Barber{
		UserID:             invite.OwnerID,
		Name:               name,
		PaymentPeriod:      period,
		IsActive:           true,
		CalendarVisibility: domain.CalendarVisibilityOwn,
	})
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberAlreadyExists) {
			s.logger.Warn("RegisterBarber: user=%d is already a barber", invite.OwnerID)
			return nil, ErrBarberAlreadyExists
		}
		s.logger.Error("RegisterBarber: repository error: %v", err)
		return nil, fmt.Errorf("%w: RegisterBarber - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("RegisterBarber: registered barber id=%d for user=%d", created.ID, created.UserID)
	return models.FromDomainBarber(created), nil
}

// UpdateBarber обновляет профиль барбера (только администратор)
func (s *Service) UpdateBarber(ctx context.Context, id int64, req *models.UpdateBarberRequest) (*models.BarberResponse, error) {
	s.logger.Info("UpdateBarber: id=%d by user=%d", id, req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("UpdateBarber: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	update := domain.BarberUpdate{
		Name:               req.Name,
		PaymentPeriod:      req.PaymentPeriod,
		IsActive:           req.IsActive,
		CalendarVisibility: req.CalendarVisibility,
		VisibleBarberIDs:   req.VisibleBarberIDs,
	}
	if err := validateBarberUpdate(&update); err != nil {
		s.logger.Warn("UpdateBarber: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.barberRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("UpdateBarber: barber id=%d not found", id)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("UpdateBarber: repository error for barber id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateBarber - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateBarber: updated barber id=%d", id)
	return models.FromDomainBarber(updated), nil
}

// GetBarber получает барбера по ID
func (s *Service) GetBarber(ctx context.Context, id int64) (*models.BarberResponse, error) {
	barber, err := s.getBarber(ctx, "GetBarber", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBarber(barber), nil
}

// ListBarbers получает список барберов
func (s *Service) ListBarbers(ctx context.Context, activeOnly bool) (*models.BarberListResponse, error) {
	barbers, err := s.barberRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListBarbers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBarbers - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListBarbers: fetched %d barbers (activeOnly=%t)", len(barbers), activeOnly)
	return models.FromDomainBarberList(barbers), nil
}

// CalendarScope возвращает ID барберов, чьи календари может видеть барбер
// Запрашивать может сам барбер или администратор
func (s *Service) CalendarScope(ctx context.Context, actor domain.Actor, barberID int64) (*models.CalendarScopeResponse, error) {
	barber, err := s.getBarber(ctx, "CalendarScope", barberID)
	if err != nil {
		return nil, err
	}

	if !actor.CanActForBarber(barber) {
		s.logger.Warn("CalendarScope: user=%d has no access to barber id=%d", actor.UserID, barberID)
		return nil, ErrAccessDenied
	}

	var activeIDs []int64
	if barber.CalendarVisibility == domain.CalendarVisibilityAll {
		active, err := s.barberRepo.List(ctx, true)
		if err != nil {
			s.logger.Error("CalendarScope: failed to list active barbers: %v", err)
			return nil, fmt.Errorf("%w: CalendarScope - repository error: %w", ErrInternal, err)
		}
		activeIDs = make([]int64, 0, len(active))
		for _, b := range active {
			activeIDs = append(activeIDs, b.ID)
		}
	}

	return &models.CalendarScopeResponse{
		BarberID:         barberID,
		VisibleBarberIDs: barber.CalendarScope(activeIDs),
	}, nil
}

// ============================================================
// Комиссии
// ============================================================

// SetCommission задает процент барбера для услуги (только администратор)
func (s *Service) SetCommission(ctx context.Context, req *models.SetCommissionRequest) (*models.CommissionResponse, error) {
	s.logger.Info("SetCommission: barber=%d, service=%d, percentage=%s by user=%d",
		req.BarberID, req.ServiceID, req.Percentage.String(), req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("SetCommission: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	if err := domain.ValidatePercentage(req.Percentage); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if _, err := s.getBarber(ctx, "SetCommission", req.BarberID); err != nil {
		return nil, err
	}
	if _, err := s.GetService(ctx, req.ServiceID); err != nil {
		return nil, err
	}

	commission := &domain.Commission{
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		Percentage: req.Percentage,
	}
	if err := s.commissionRepo.Upsert(ctx, commission); err != nil {
		s.logger.Error("SetCommission: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetCommission - repository error: %w", ErrInternal, err)
	}

	return &models.CommissionResponse{
		BarberID:   commission.BarberID,
		ServiceID:  commission.ServiceID,
		Percentage: commission.Percentage.StringFixed(2),
	}, nil
}

// CommissionTable загружает таблицу процентов барбера с процентом по умолчанию
func (s *Service) CommissionTable(ctx context.Context, barberID int64) (*domain.CommissionTable, error) {
	overrides, err := s.commissionRepo.GetByBarber(ctx, barberID)
	if err != nil {
		s.logger.Error("CommissionTable: repository error for barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: CommissionTable - repository error: %w", ErrInternal, err)
	}
	return domain.NewCommissionTable(s.defaultPercent, overrides), nil
}

// EffectivePercentage возвращает процент барбера для услуги с учетом значения по умолчанию
func (s *Service) EffectivePercentage(ctx context.Context, barberID, serviceID int64) (decimal.Decimal, error) {
	table, err := s.CommissionTable(ctx, barberID)
	if err != nil {
		return decimal.Zero, err
	}
	return table.EffectivePercentage(serviceID), nil
}

func (s *Service) getBarber(ctx context.Context, op string, id int64) (*domain.Barber, error) {
	barber, err := s.barberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("%s: barber id=%d not found", op, id)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("%s: repository error for barber id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return barber, nil
}
