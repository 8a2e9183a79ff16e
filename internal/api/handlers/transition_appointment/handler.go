package transition_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-BarberService/internal/usecase/transition_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса: status должен быть pending, confirmed, completed или canceled"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "менять статус записи может только ее барбер или администратор"
	msgInvalidTransition    = "переход в указанный статус недопустим"
	msgRelatedNotFound      = "услуга записи не найдена"
)

type Handler struct {
	useCase TransitionAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase TransitionAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/status - Unauthorized access attempt: appointment_id=%d", appointmentID)
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, transitionAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/status - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid transition: appointment_id=%d, target=%s",
				appointmentID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Related entity not found: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondNotFound(w, msgRelatedNotFound)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to change status: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status changed: appointment_id=%d, %s -> %s",
		appointmentID, result.PreviousStatus, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
