package list_barber_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/appointments"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidParams   = "некорректные параметры запроса: from и to обязательны (RFC3339 или YYYY-MM-DD)"
	msgInvalidPeriod   = "конец периода должен быть позже начала"
	msgBarberNotFound  = "барбер не найден"
	msgForbidden       = "нет доступа к календарю этого барбера"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/appointments
// Query params: from, to (required), status (опционально, можно несколько)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/appointments - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /barbers/{id}/appointments - Unauthorized access attempt: barber_id=%d", barberID)
		handlers.RespondUnauthorized(w, "")
		return
	}

	serviceReq, err := ToServiceRequest(r, actor, barberID)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListByBarber(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/appointments - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /barbers/{id}/appointments - Access denied: barber_id=%d, user_id=%d", barberID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/appointments - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /barbers/{id}/appointments - Failed to list appointments: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/appointments - Appointments retrieved successfully: barber_id=%d, count=%d",
		barberID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
