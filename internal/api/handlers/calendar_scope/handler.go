package calendar_scope

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgNotFound        = "барбер не найден"
	msgForbidden       = "нет доступа к настройкам календаря этого барбера"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/calendar-scope
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/calendar-scope - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /barbers/{id}/calendar-scope - Unauthorized access attempt: barber_id=%d", barberID)
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.CalendarScope(r.Context(), actor, barberID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/calendar-scope - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("GET /barbers/{id}/calendar-scope - Access denied: barber_id=%d, user_id=%d", barberID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /barbers/{id}/calendar-scope - Failed to get scope: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/calendar-scope - Scope retrieved: barber_id=%d, visible=%d",
		barberID, len(result.VisibleBarberIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
