package appointments

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments/models"
)

// Service сервис чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	barberRepo      BarberRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	barberRepo BarberRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		barberRepo:      barberRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Видеть запись может клиент-владелец, барбер записи или администратор
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, actor.UserID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if err := s.checkAppointmentAccess(ctx, appointment, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", actor.UserID, id)
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListByBarber получает записи барбера за период
// Доступно администратору и барберам, в чью видимость календаря входит этот барбер
func (s *Service) ListByBarber(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByBarber: barber=%d, period=%s to %s, user=%d",
		req.BarberID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.Actor.UserID)

	if !req.To.After(req.From) {
		return nil, fmt.Errorf("%w: 'to' must be after 'from'", ErrInvalidInput)
	}

	if _, err := s.getBarber(ctx, req.BarberID); err != nil {
		return nil, err
	}

	if err := s.checkCalendarAccess(ctx, req.BarberID, req.Actor); err != nil {
		s.logger.Warn("ListByBarber: access denied for user=%d to barber id=%d", req.Actor.UserID, req.BarberID)
		return nil, err
	}

	from, to := req.From, req.To
	appointments, err := s.appointmentRepo.GetByFilter(ctx, domain.AppointmentFilter{
		BarberID: req.BarberID,
		From:     &from,
		To:       &to,
		Statuses: req.Statuses,
	})
	if err != nil {
		s.logger.Error("ListByBarber: repository error for barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: ListByBarber - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListByBarber: fetched %d appointments for barber=%d", len(appointments), req.BarberID)
	return models.FromDomainAppointmentList(appointments), nil
}

// checkAppointmentAccess проверяет доступ к конкретной записи
func (s *Service) checkAppointmentAccess(ctx context.Context, appointment *domain.Appointment, actor domain.Actor) error {
	if actor.IsAdmin() || appointment.ClientID == actor.UserID {
		return nil
	}

	if !actor.IsBarber() {
		return ErrAccessDenied
	}

	barber, err := s.getBarber(ctx, appointment.BarberID)
	if err != nil {
		return err
	}
	if !actor.CanActForBarber(barber) {
		return ErrAccessDenied
	}
	return nil
}

// checkCalendarAccess проверяет, что пользователь может видеть календарь барбера
func (s *Service) checkCalendarAccess(ctx context.Context, barberID int64, actor domain.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if !actor.IsBarber() {
		return ErrAccessDenied
	}

	viewer, err := s.barberRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkCalendarAccess - repository error: %w", ErrInternal, err)
	}

	var activeIDs []int64
	if viewer.CalendarVisibility == domain.CalendarVisibilityAll {
		active, err := s.barberRepo.List(ctx, true)
		if err != nil {
			return fmt.Errorf("%w: checkCalendarAccess - repository error: %w", ErrInternal, err)
		}
		for _, b := range active {
			activeIDs = append(activeIDs, b.ID)
		}
	}

	if !slices.Contains(viewer.CalendarScope(activeIDs), barberID) {
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) getBarber(ctx context.Context, id int64) (*domain.Barber, error) {
	barber, err := s.barberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		s.logger.Error("getBarber: repository error for barber id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getBarber - repository error: %w", ErrInternal, err)
	}
	return barber, nil
}
