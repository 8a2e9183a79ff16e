package completedservices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	completedRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/completedservice"
	"github.com/m04kA/SMC-BarberService/internal/service/completedservices/models"
)

// Service сервис учета выполненных услуг
type Service struct {
	completedRepo CompletedServiceRepository
	barberRepo    BarberRepository
	serviceRepo   ServiceRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса выполненных услуг
func NewService(
	completedRepo CompletedServiceRepository,
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *Service {
	return &Service{
		completedRepo: completedRepo,
		barberRepo:    barberRepo,
		serviceRepo:   serviceRepo,
		logger:        logger,
	}
}

// Record записывает услугу, выполненную без предварительной записи
// Записывать может администратор или сам барбер; appointmentId никогда не выставляется
func (s *Service) Record(ctx context.Context, req *models.RecordRequest) (*models.CompletedServiceResponse, error) {
	s.logger.Info("Record: barber=%d, service=%d, price=%s by user=%d",
		req.BarberID, req.ServiceID, req.Price.String(), req.Actor.UserID)

	clientName := strings.TrimSpace(req.ClientName)
	if err := validateRecord(clientName, req); err != nil {
		s.logger.Warn("Record: validation failed: %v", err)
		return nil, err
	}

	barber, err := s.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("Record: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("Record: repository error for barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: Record - repository error: %w", ErrInternal, err)
	}

	if !req.Actor.CanActForBarber(barber) {
		s.logger.Warn("Record: user=%d cannot record for barber id=%d", req.Actor.UserID, req.BarberID)
		return nil, ErrAccessDenied
	}

	if _, err := s.serviceRepo.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Record: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Record: repository error for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Record - repository error: %w", ErrInternal, err)
	}

	created, err := s.completedRepo.Create(ctx, &domain.CompletedService{
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		ClientID:   req.ClientID,
		ClientName: clientName,
		Price:      req.Price,
		Date:       req.Date,
	})
	if err != nil {
		s.logger.Error("Record: repository error: %v", err)
		return nil, fmt.Errorf("%w: Record - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Record: created completed service id=%d", created.ID)
	return models.FromDomainCompletedService(created), nil
}

// RecordFromAppointment записывает услугу по завершенной записи
// Вызывается внутри транзакции перехода статуса; цена - текущая цена услуги
func (s *Service) RecordFromAppointment(
	ctx context.Context,
	appointment *domain.Appointment,
	service *domain.Service,
) (*domain.CompletedService, error) {
	clientID := appointment.ClientID
	appointmentID := appointment.ID

	created, err := s.completedRepo.Create(ctx, &domain.CompletedService{
		BarberID:      appointment.BarberID,
		ServiceID:     appointment.ServiceID,
		ClientID:      &clientID,
		ClientName:    appointment.ClientName,
		Price:         service.Price,
		Date:          appointment.Date,
		AppointmentID: &appointmentID,
	})
	if err != nil {
		if errors.Is(err, completedRepo.ErrAlreadyRecorded) {
			s.logger.Warn("RecordFromAppointment: appointment id=%d already recorded", appointment.ID)
			return nil, ErrAlreadyRecorded
		}
		s.logger.Error("RecordFromAppointment: repository error for appointment id=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: RecordFromAppointment - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("RecordFromAppointment: created completed service id=%d for appointment id=%d", created.ID, appointment.ID)
	return created, nil
}

// Validate подтверждает выполненную услугу (только администратор)
// Повторное подтверждение возвращает ErrAlreadyValidated
func (s *Service) Validate(ctx context.Context, id int64, actor domain.Actor) (*models.CompletedServiceResponse, error) {
	s.logger.Info("Validate: completed service id=%d by user=%d", id, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("Validate: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	validated, err := s.completedRepo.MarkValidated(ctx, id)
	if err == nil {
		s.logger.Info("Validate: completed service id=%d validated", id)
		return models.FromDomainCompletedService(validated), nil
	}

	if !errors.Is(err, completedRepo.ErrNotUpdated) {
		s.logger.Error("Validate: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Validate - repository error: %w", ErrInternal, err)
	}

	// Ни одна строка не обновлена: либо записи нет, либо она уже подтверждена
	if _, err := s.completedRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, completedRepo.ErrCompletedServiceNotFound) {
			s.logger.Warn("Validate: completed service id=%d not found", id)
			return nil, ErrCompletedServiceNotFound
		}
		s.logger.Error("Validate: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Validate - repository error: %w", ErrInternal, err)
	}

	s.logger.Warn("Validate: completed service id=%d already validated", id)
	return nil, ErrAlreadyValidated
}

// List получает выполненные услуги барбера (очередь подтверждения администратора)
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.CompletedServiceListResponse, error) {
	s.logger.Info("List: barber=%d, unvalidatedOnly=%t by user=%d", req.BarberID, req.UnvalidatedOnly, req.Actor.UserID)

	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return nil, fmt.Errorf("%w: 'to' must be after 'from'", ErrInvalidInput)
	}

	barber, err := s.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		s.logger.Error("List: repository error for barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}
	if !req.Actor.CanActForBarber(barber) {
		s.logger.Warn("List: user=%d has no access to barber id=%d", req.Actor.UserID, req.BarberID)
		return nil, ErrAccessDenied
	}

	list, err := s.completedRepo.List(ctx, domain.RecordFilter{
		BarberID:        req.BarberID,
		From:            req.From,
		To:              req.To,
		UnvalidatedOnly: req.UnvalidatedOnly,
	})
	if err != nil {
		s.logger.Error("List: repository error for barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainCompletedServiceList(list), nil
}
