package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
)

const (
	msgInvalidParams = "некорректный параметр activeOnly"
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

// Handle GET /api/v1/services
// Query params: activeOnly (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := handlers.QueryBool(r, "activeOnly")
	if err != nil {
		h.logger.Warn("GET /services - Invalid activeOnly: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListServices(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services retrieved: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
