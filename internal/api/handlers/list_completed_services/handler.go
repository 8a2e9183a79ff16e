package list_completed_services

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/completedservices"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidParams   = "некорректные параметры запроса"
	msgBarberNotFound  = "барбер не найден"
	msgForbidden       = "нет доступа к услугам этого барбера"
)

type Handler struct {
	service CompletedServiceService
	logger  Logger
}

func NewHandler(service CompletedServiceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/completed-services
// Query params: from, to, unvalidatedOnly (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/completed-services - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /barbers/{id}/completed-services - Unauthorized access attempt: barber_id=%d", barberID)
		handlers.RespondUnauthorized(w, "")
		return
	}

	serviceReq, err := ToServiceRequest(r, actor, barberID)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/completed-services - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, completedservices.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/completed-services - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, completedservices.ErrAccessDenied):
			h.logger.Warn("GET /barbers/{id}/completed-services - Access denied: barber_id=%d, user_id=%d",
				barberID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, completedservices.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/completed-services - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /barbers/{id}/completed-services - Failed to list: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/completed-services - Retrieved: barber_id=%d, count=%d", barberID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
