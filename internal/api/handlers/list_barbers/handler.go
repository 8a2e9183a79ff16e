package list_barbers

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

// Handle GET /api/v1/barbers
// Query params: activeOnly (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := handlers.QueryBool(r, "activeOnly")
	if err != nil {
		h.logger.Warn("GET /barbers - Invalid activeOnly: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListBarbers(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /barbers - Failed to list barbers: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /barbers - Barbers retrieved: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
