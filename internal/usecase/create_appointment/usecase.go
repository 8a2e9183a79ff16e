package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// UseCase use case для создания записи к барберу
type UseCase struct {
	appointmentRepo AppointmentRepository
	barberRepo      BarberRepository
	serviceRepo     ServiceRepository
	txManager       TransactionManager
	window          domain.WorkingWindow
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	window domain.WorkingWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		barberRepo:      barberRepo,
		serviceRepo:     serviceRepo,
		txManager:       txManager,
		window:          window,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Все проверки черновика выполняются в сериализуемой транзакции с блокировкой записей барбера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, barber=%d, service=%d, date=%s, time=%s",
		req.Actor.UserID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем клиента
	clientID, err := resolveClient(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: client resolution failed for user=%d: %v", req.Actor.UserID, err)
		return nil, err
	}

	// 3. Собираем черновик
	start, err := req.StartTime.On(uc.window.Day(req.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	draft, err := domain.NewDraftBooking().
		ForBarber(req.BarberID).
		WithService(req.ServiceID).
		At(start).
		ForClient(clientID, req.ClientName).
		WithNotes(req.Notes).
		Build()
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid draft: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var result *domain.Appointment

	// 4. Проверяем черновик и создаем запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Барбер существует и активен
		barber, err := uc.barberRepo.GetByID(txCtx, draft.BarberID)
		if err != nil {
			if errors.Is(err, barberRepo.ErrBarberNotFound) {
				uc.logger.Warn("CreateAppointment: barber id=%d not found", draft.BarberID)
				return ErrBarberNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get barber id=%d: %v", draft.BarberID, err)
			return fmt.Errorf("%w: failed to get barber: %w", ErrInternal, err)
		}
		if !barber.IsBookable() {
			uc.logger.Warn("CreateAppointment: barber id=%d is inactive", draft.BarberID)
			return ErrBarberInactive
		}

		// Барбер записывает клиентов только к себе
		if req.Actor.IsBarber() && !req.Actor.CanActForBarber(barber) {
			uc.logger.Warn("CreateAppointment: barber user=%d cannot book for barber id=%d", req.Actor.UserID, barber.ID)
			return ErrAccessDenied
		}

		// 4.2. Услуга существует и активна
		service, err := uc.serviceRepo.GetByID(txCtx, draft.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%d not found", draft.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", draft.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}
		if !service.IsActive {
			uc.logger.Warn("CreateAppointment: service id=%d is inactive", draft.ServiceID)
			return ErrServiceInactive
		}

		// 4.3. Начало в будущем с учетом минимального времени до записи
		if err := validateBookingTime(draft.Start, uc.window.EarliestStart(now)); err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return err
		}

		// 4.4. Время попадает в сетку слотов и в рабочие часы
		if !uc.window.IsOnGrid(req.StartTime, service.DurationMinutes) {
			uc.logger.Warn("CreateAppointment: %s is not a valid slot for %d minutes", req.StartTime, service.DurationMinutes)
			return ErrInvalidTimeSlot
		}

		// 4.5. Блокируем записи барбера, которые могут пересечься (FOR UPDATE)
		end := draft.Start.Add(time.Duration(service.DurationMinutes) * time.Minute)
		from := draft.Start.Add(-domain.MaxServiceDurationMinutes * time.Minute)
		appointments, err := uc.appointmentRepo.GetByFilter(txCtx, domain.AppointmentFilter{
			BarberID: draft.BarberID,
			From:     &from,
			To:       &end,
			Statuses: domain.BlockingStatuses,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		// 4.6. Проверяем, что слот свободен
		if hasOverlap(draft.Start, end, appointments) {
			uc.logger.Warn("CreateAppointment: slot %s is taken for barber id=%d",
				draft.Start.Format(time.RFC3339), draft.BarberID)
			return ErrSlotNotAvailable
		}

		// 4.7. Создаем запись в статусе pending
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:        draft.ClientID,
			ClientName:      draft.ClientName,
			BarberID:        draft.BarberID,
			ServiceID:       draft.ServiceID,
			Date:            draft.Start,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			Notes:           draft.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		ClientName:      result.ClientName,
		BarberID:        result.BarberID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       types.NewTimeString(result.Date.In(uc.window.Loc())),
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
