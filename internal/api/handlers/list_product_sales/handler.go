package list_product_sales

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/productsales"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidParams   = "некорректные параметры запроса"
	msgBarberNotFound  = "барбер не найден"
	msgForbidden       = "нет доступа к продажам этого барбера"
)

type Handler struct {
	service ProductSaleService
	logger  Logger
}

func NewHandler(service ProductSaleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/product-sales
// Query params: from, to, unvalidatedOnly (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/product-sales - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /barbers/{id}/product-sales - Unauthorized access attempt: barber_id=%d", barberID)
		handlers.RespondUnauthorized(w, "")
		return
	}

	serviceReq, err := ToServiceRequest(r, actor, barberID)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/product-sales - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, productsales.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/product-sales - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, productsales.ErrAccessDenied):
			h.logger.Warn("GET /barbers/{id}/product-sales - Access denied: barber_id=%d, user_id=%d",
				barberID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, productsales.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/product-sales - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /barbers/{id}/product-sales - Failed to list: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/product-sales - Retrieved: barber_id=%d, count=%d", barberID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
