package record_completed_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/completedservices"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата, ожидается RFC3339 или YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные услуги"
	msgBarberNotFound     = "барбер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgForbidden          = "записывать услуги может только сам барбер или администратор"
)

type Handler struct {
	service CompletedServiceService
	logger  Logger
}

func NewHandler(service CompletedServiceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/completed-services
// Услуга без предварительной записи (walk-in)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /completed-services - Unauthorized access attempt")
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req RecordCompletedServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /completed-services - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor)
	if err != nil {
		h.logger.Warn("POST /completed-services - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Record(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, completedservices.ErrBarberNotFound):
			h.logger.Warn("POST /completed-services - Barber not found: barber_id=%d", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, completedservices.ErrServiceNotFound):
			h.logger.Warn("POST /completed-services - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, completedservices.ErrAccessDenied):
			h.logger.Warn("POST /completed-services - Access denied: barber_id=%d, user_id=%d", req.BarberID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, completedservices.ErrInvalidInput):
			h.logger.Warn("POST /completed-services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /completed-services - Failed to record service: barber_id=%d, error=%v", req.BarberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /completed-services - Completed service recorded: id=%d, barber_id=%d, price=%s",
		result.ID, result.BarberID, result.Price)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
