package update_barber

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные барбера"
	msgNotFound           = "барбер не найден"
	msgForbidden          = "изменять барберов может только администратор"
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

// Handle PATCH /api/v1/barbers/{barberId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("PATCH /barbers/{id} - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /barbers/{id} - Unauthorized access attempt: barber_id=%d", barberID)
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req UpdateBarberRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /barbers/{id} - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateBarber(r.Context(), barberID, req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBarberNotFound):
			h.logger.Warn("PATCH /barbers/{id} - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PATCH /barbers/{id} - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PATCH /barbers/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /barbers/{id} - Failed to update barber: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /barbers/{id} - Barber updated: barber_id=%d", barberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
