package settle_commissions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	settleCommissions "github.com/m04kA/SMC-BarberService/internal/usecase/settle_commissions"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная граница периода, ожидается RFC3339 или YYYY-MM-DD"
	msgBarberNotFound     = "барбер не найден"
	msgForbidden          = "рассчитывать выплаты может только администратор"
	msgInvalidPeriod      = "некорректный период: конец должен быть позже начала"
	msgPeriodOverlaps     = "период пересекается с уже созданной выплатой"
	msgNothingToSettle    = "нет подтвержденных услуг и продаж для расчета"
)

type Handler struct {
	useCase SettleCommissionsUseCase
	logger  Logger
}

func NewHandler(useCase SettleCommissionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/barbers/{barberId}/settlements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("POST /barbers/{id}/settlements - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /barbers/{id}/settlements - Unauthorized access attempt: barber_id=%d", barberID)
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req SettleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /barbers/{id}/settlements - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, barberID)
	if err != nil {
		h.logger.Warn("POST /barbers/{id}/settlements - Invalid period bounds: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, settleCommissions.ErrBarberNotFound):
			h.logger.Warn("POST /barbers/{id}/settlements - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, settleCommissions.ErrAccessDenied):
			h.logger.Warn("POST /barbers/{id}/settlements - Access denied: barber_id=%d, user_id=%d", barberID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, settleCommissions.ErrPeriodOverlaps):
			h.logger.Warn("POST /barbers/{id}/settlements - Period overlaps: barber_id=%d, period=%s..%s",
				barberID, req.PeriodStart, req.PeriodEnd)
			handlers.RespondConflict(w, msgPeriodOverlaps)

		case errors.Is(err, settleCommissions.ErrInvalidPeriod):
			h.logger.Warn("POST /barbers/{id}/settlements - Invalid period: barber_id=%d, period=%s..%s",
				barberID, req.PeriodStart, req.PeriodEnd)
			handlers.RespondConflict(w, msgInvalidPeriod)

		default:
			h.logger.Error("POST /barbers/{id}/settlements - Failed to settle: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Skipped {
		h.logger.Info("POST /barbers/{id}/settlements - Nothing to settle: barber_id=%d", barberID)
		handlers.RespondJSON(w, http.StatusOK, SkippedResponse{Skipped: true, BarberID: barberID, Reason: msgNothingToSettle})
		return
	}

	h.logger.Info("POST /barbers/{id}/settlements - Payment created: payment_id=%d, barber_id=%d, amount=%s",
		result.PaymentID, barberID, result.Amount.StringFixed(2))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
