package get_available_slots

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

// UseCase use case для получения доступных слотов барбера
type UseCase struct {
	appointmentRepo AppointmentRepository
	barberRepo      BarberRepository
	serviceRepo     ServiceRepository
	window          domain.WorkingWindow
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	window domain.WorkingWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		barberRepo:      barberRepo,
		serviceRepo:     serviceRepo,
		window:          window,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Результат пересчитывается при каждом вызове; при создании записи доступность проверяется повторно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, date=%s", req.BarberID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day := uc.window.Day(req.Date)
	response := &Response{
		Date:     day,
		BarberID: req.BarberID,
		Slots:    []types.TimeString{},
	}

	// 2. Определяем длительность
	duration, bookable, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}
	response.DurationMinutes = duration
	if !bookable {
		return response, nil
	}

	// 3. Неизвестный или неактивный барбер - пустой список
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Info("GetAvailableSlots: barber id=%d not found, returning no slots", req.BarberID)
			return response, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %w", ErrInternal, err)
	}
	if !barber.IsBookable() {
		uc.logger.Info("GetAvailableSlots: barber id=%d is inactive, returning no slots", req.BarberID)
		return response, nil
	}

	// 4. Прошедшие даты - пустой список
	now := uc.timeProvider.Now()
	if isDayInPast(day, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", day.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Получаем блокирующие записи барбера, которые могут задеть этот день
	from := day.Add(-domain.MaxServiceDurationMinutes * time.Minute)
	to := day.AddDate(0, 0, 1)
	appointments, err := uc.appointmentRepo.GetByFilter(ctx, domain.AppointmentFilter{
		BarberID: req.BarberID,
		From:     &from,
		To:       &to,
		Statuses: domain.BlockingStatuses,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	// 6. Отбираем свободные слоты
	response.Slots = freeSlots(
		uc.window.Candidates(duration),
		day,
		duration,
		uc.window.EarliestStart(now),
		appointments,
	)

	uc.logger.Info("GetAvailableSlots: %d free slots for barber=%d on %s",
		len(response.Slots), req.BarberID, day.Format(domain.DateFormat))
	return response, nil
}

// resolveDuration возвращает длительность из запроса или из услуги
// bookable = false, если услуга неактивна
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, bool, error) {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes, true, nil
	}

	service, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
			return 0, false, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
		return 0, false, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Info("GetAvailableSlots: service id=%d is inactive, returning no slots", service.ID)
		return service.DurationMinutes, false, nil
	}
	return service.DurationMinutes, true, nil
}
