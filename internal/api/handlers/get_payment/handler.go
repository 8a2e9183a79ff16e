package get_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/payments"
)

const (
	msgInvalidPaymentID = "некорректный ID выплаты"
	msgNotFound         = "выплата не найдена"
	msgForbidden        = "нет доступа к этой выплате"
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

// Handle GET /api/v1/payments/{paymentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID, err := handlers.PathInt64(r, "paymentId")
	if err != nil {
		h.logger.Warn("GET /payments/{id} - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /payments/{id} - Unauthorized access attempt: payment_id=%d", paymentID)
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.GetByID(r.Context(), paymentID, actor)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("GET /payments/{id} - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("GET /payments/{id} - Access denied: payment_id=%d, user_id=%d", paymentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /payments/{id} - Failed to get payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
