package transition_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberService/pkg/ptr"
)

// UseCase use case для перехода записи между статусами
type UseCase struct {
	appointmentRepo AppointmentRepository
	barberRepo      BarberRepository
	serviceRepo     ServiceRepository
	recorder        CompletedServiceRecorder
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	recorder CompletedServiceRecorder,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		barberRepo:      barberRepo,
		serviceRepo:     serviceRepo,
		recorder:        recorder,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет переход статуса
// Смена статуса - условный UPDATE по текущему статусу; проигравший в гонке получает ErrInvalidTransition.
// Переход в completed в той же транзакции создает ровно одну выполненную услугу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionAppointment: appointment=%d, target=%s, user=%d",
		req.AppointmentID, req.TargetStatus, req.Actor.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionAppointment: validation failed: %v", err)
		return nil, err
	}

	var (
		updated  *domain.Appointment
		previous domain.AppointmentStatus
		recorded *domain.CompletedService
	)

	// 2. Все шаги в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем запись (FOR UPDATE)
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("TransitionAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("TransitionAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 2.2. Проверяем права: администратор или барбер записи
		if err := uc.checkAccess(txCtx, appointment, req.Actor); err != nil {
			return err
		}

		// 2.3. Проверяем переход по машине состояний
		previous = appointment.Status
		if !appointment.CanTransitionTo(req.TargetStatus) {
			uc.logger.Warn("TransitionAppointment: %s -> %s is not allowed for appointment id=%d",
				appointment.Status, req.TargetStatus, appointment.ID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, req.TargetStatus)
		}

		// 2.4. Условное обновление статуса
		updated, err = uc.appointmentRepo.UpdateStatusIf(txCtx, appointment.ID, appointment.Status, req.TargetStatus)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				uc.logger.Warn("TransitionAppointment: appointment id=%d changed concurrently", appointment.ID)
				return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
			}
			uc.logger.Error("TransitionAppointment: failed to update status: %v", err)
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		if req.TargetStatus != domain.StatusCompleted {
			return nil
		}

		// 2.5. Фиксируем выполненную услугу по текущей цене
		service, err := uc.serviceRepo.GetByID(txCtx, updated.ServiceID)
		if err != nil {
			uc.logger.Error("TransitionAppointment: failed to get service id=%d: %v", updated.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}

		recorded, err = uc.recorder.RecordFromAppointment(txCtx, updated, service)
		if err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.IncAppointmentTransition(string(updated.Status))
	uc.logger.Info("TransitionAppointment: appointment id=%d moved %s -> %s", updated.ID, previous, updated.Status)

	response := &Response{
		ID:              updated.ID,
		ClientID:        updated.ClientID,
		ClientName:      updated.ClientName,
		BarberID:        updated.BarberID,
		ServiceID:       updated.ServiceID,
		Date:            updated.Date,
		DurationMinutes: updated.DurationMinutes,
		Status:          string(updated.Status),
		PreviousStatus:  string(previous),
		Notes:           updated.Notes,
		UpdatedAt:       updated.UpdatedAt,
	}
	if recorded != nil {
		response.CompletedServiceID = ptr.Ptr(recorded.ID)
	}
	return response, nil
}

// checkAccess проверяет, что пользователь - администратор или барбер записи
func (uc *UseCase) checkAccess(ctx context.Context, appointment *domain.Appointment, actor domain.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if !actor.IsBarber() {
		uc.logger.Warn("TransitionAppointment: user=%d with role %s cannot change status", actor.UserID, actor.Role)
		return ErrAccessDenied
	}

	barber, err := uc.barberRepo.GetByID(ctx, appointment.BarberID)
	if err != nil {
		uc.logger.Error("TransitionAppointment: failed to get barber id=%d: %v", appointment.BarberID, err)
		return fmt.Errorf("%w: failed to get barber: %w", ErrInternal, err)
	}
	if !actor.CanActForBarber(barber) {
		uc.logger.Warn("TransitionAppointment: user=%d is not the barber of appointment id=%d", actor.UserID, appointment.ID)
		return ErrAccessDenied
	}
	return nil
}
