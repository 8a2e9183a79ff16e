package record_product_sale

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/productsales"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные продажи"
	msgBarberNotFound     = "барбер не найден"
	msgForbidden          = "записывать продажи может только сам барбер или администратор"
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

// Handle POST /api/v1/product-sales
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /product-sales - Unauthorized access attempt")
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req RecordProductSaleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /product-sales - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor)
	if err != nil {
		h.logger.Warn("POST /product-sales - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Record(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, productsales.ErrBarberNotFound):
			h.logger.Warn("POST /product-sales - Barber not found: barber_id=%d", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, productsales.ErrAccessDenied):
			h.logger.Warn("POST /product-sales - Access denied: barber_id=%d, user_id=%d", req.BarberID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, productsales.ErrInvalidInput):
			h.logger.Warn("POST /product-sales - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /product-sales - Failed to record sale: barber_id=%d, error=%v", req.BarberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /product-sales - Product sale recorded: id=%d, barber_id=%d, total=%s",
		result.ID, result.BarberID, result.Total)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
