package list_payments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/payments"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgBarberNotFound  = "барбер не найден"
	msgForbidden       = "нет доступа к выплатам этого барбера"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/payments - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /barbers/{id}/payments - Unauthorized access attempt: barber_id=%d", barberID)
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.ListByBarber(r.Context(), barberID, actor)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/payments - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("GET /barbers/{id}/payments - Access denied: barber_id=%d, user_id=%d", barberID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /barbers/{id}/payments - Failed to list payments: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/payments - Payments retrieved: barber_id=%d, count=%d", barberID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
