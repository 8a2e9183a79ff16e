package validate_product_sale

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/productsales"
)

const (
	msgInvalidID        = "некорректный ID продажи"
	msgNotFound         = "продажа не найдена"
	msgForbidden        = "подтверждать продажи может только администратор"
	msgAlreadyValidated = "продажа уже подтверждена"
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

// Handle PATCH /api/v1/product-sales/{id}/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /product-sales/{id}/validate - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /product-sales/{id}/validate - Unauthorized access attempt: id=%d", id)
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.Validate(r.Context(), id, actor)
	if err != nil {
		switch {
		case errors.Is(err, productsales.ErrProductSaleNotFound):
			h.logger.Warn("PATCH /product-sales/{id}/validate - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, productsales.ErrAccessDenied):
			h.logger.Warn("PATCH /product-sales/{id}/validate - Access denied: id=%d, user_id=%d", id, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, productsales.ErrAlreadyValidated):
			h.logger.Warn("PATCH /product-sales/{id}/validate - Already validated: id=%d", id)
			handlers.RespondConflict(w, msgAlreadyValidated)

		default:
			h.logger.Error("PATCH /product-sales/{id}/validate - Failed to validate: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /product-sales/{id}/validate - Validated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
