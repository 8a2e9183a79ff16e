package mark_payment_paid

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
	msgForbidden        = "отмечать выплаты может только администратор"
	msgAlreadyPaid      = "выплата уже проведена"
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

// Handle PATCH /api/v1/payments/{paymentId}/pay
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID, err := handlers.PathInt64(r, "paymentId")
	if err != nil {
		h.logger.Warn("PATCH /payments/{id}/pay - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /payments/{id}/pay - Unauthorized access attempt: payment_id=%d", paymentID)
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.MarkPaid(r.Context(), paymentID, actor)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("PATCH /payments/{id}/pay - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("PATCH /payments/{id}/pay - Access denied: payment_id=%d, user_id=%d", paymentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrAlreadyPaid):
			h.logger.Warn("PATCH /payments/{id}/pay - Payment is not pending: payment_id=%d", paymentID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		default:
			h.logger.Error("PATCH /payments/{id}/pay - Failed to mark paid: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /payments/{id}/pay - Payment marked paid: payment_id=%d, amount=%s", paymentID, result.Amount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
