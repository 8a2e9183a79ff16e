package create_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные услуги"
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

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /services - Unauthorized access attempt")
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateService(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /services - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /services - Failed to create service: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d, price=%s", result.ID, result.Price)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
