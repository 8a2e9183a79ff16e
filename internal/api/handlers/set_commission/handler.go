package set_commission

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPercentage  = "процент комиссии должен быть от 0 до 100"
	msgBarberNotFound     = "барбер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgForbidden          = "настраивать комиссии может только администратор"
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

// Handle PUT /api/v1/barbers/{barberId}/commissions/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("PUT /barbers/{id}/commissions/{id} - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("PUT /barbers/{id}/commissions/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /barbers/{id}/commissions/{id} - Unauthorized access attempt")
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req SetCommissionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/{id}/commissions/{id} - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetCommission(r.Context(), req.ToServiceRequest(actor, barberID, serviceID))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBarberNotFound):
			h.logger.Warn("PUT /barbers/{id}/commissions/{id} - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PUT /barbers/{id}/commissions/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /barbers/{id}/commissions/{id} - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /barbers/{id}/commissions/{id} - Invalid percentage: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPercentage)

		default:
			h.logger.Error("PUT /barbers/{id}/commissions/{id} - Failed to set commission: barber_id=%d, service_id=%d, error=%v",
				barberID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/{id}/commissions/{id} - Commission set: barber_id=%d, service_id=%d, percentage=%s",
		barberID, serviceID, result.Percentage)
	handlers.RespondJSON(w, http.StatusOK, result)
}
