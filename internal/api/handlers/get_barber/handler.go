package get_barber

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgNotFound        = "барбер не найден"
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

// Handle GET /api/v1/barbers/{barberId}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("GET /barbers/{id} - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	result, err := h.service.GetBarber(r.Context(), barberID)
	if err != nil {
		if errors.Is(err, catalog.ErrBarberNotFound) {
			h.logger.Warn("GET /barbers/{id} - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /barbers/{id} - Failed to get barber: barber_id=%d, error=%v", barberID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
