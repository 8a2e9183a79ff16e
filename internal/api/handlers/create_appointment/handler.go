package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	createAppointment "github.com/m04kA/SMC-BarberService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgBarberNotFound     = "барбер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgBarberInactive     = "барбер не принимает записи"
	msgServiceInactive    = "услуга недоступна"
	msgInvalidTimeSlot    = "время не совпадает с сеткой слотов или выходит за рабочее окно"
	msgTooLateToBook      = "слишком поздно для записи на это время"
	msgInvalidInput       = "некорректные данные записи"
	msgForbidden          = "нельзя создать запись от имени другого пользователя"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Unauthorized access attempt")
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: user_id=%d, barber_id=%d", actor.UserID, req.BarberID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrBarberNotFound):
			h.logger.Warn("POST /appointments - Barber not found: barber_id=%d", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrBarberInactive):
			h.logger.Warn("POST /appointments - Barber inactive: barber_id=%d", req.BarberID)
			handlers.RespondBadRequest(w, msgBarberInactive)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: barber_id=%d, time=%s", req.BarberID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: barber_id=%d, date=%s, time=%s",
				req.BarberID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, domain.ErrUnauthorized):
			h.logger.Warn("POST /appointments - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, barber_id=%d, error=%v",
				actor.UserID, req.BarberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d, barber_id=%d",
		result.ID, result.ClientID, result.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
