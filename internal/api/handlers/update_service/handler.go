package update_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные услуги"
	msgNotFound           = "услуга не найдена"
	msgForbidden          = "управлять каталогом может только администратор"
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

// Handle PATCH /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("PATCH /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /services/{id} - Unauthorized access attempt: service_id=%d", serviceID)
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /services/{id} - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateService(r.Context(), serviceID, req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PATCH /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PATCH /services/{id} - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PATCH /services/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /services/{id} - Failed to update service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /services/{id} - Service updated: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
