package get_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgNotFound         = "услуга не найдена"
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

// Handle GET /api/v1/services/{serviceId}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.GetService(r.Context(), serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			h.logger.Warn("GET /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /services/{id} - Failed to get service: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
