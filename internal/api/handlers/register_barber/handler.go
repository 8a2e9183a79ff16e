package register_barber

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные барбера"
	msgInvalidInvite      = "приглашение недействительно"
	msgForbidden          = "приглашение выдано другому пользователю"
	msgAlreadyExists      = "барбер для этого пользователя уже зарегистрирован"
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

// Handle POST /api/v1/barbers/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /barbers/register - Unauthorized access attempt")
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req RegisterBarberRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /barbers/register - Invalid request body: %v", err)
		handlers.RespondDecodeError(w, err, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RegisterBarber(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInvite):
			h.logger.Warn("POST /barbers/register - Invalid invite: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgInvalidInvite)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /barbers/register - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrBarberAlreadyExists):
			h.logger.Warn("POST /barbers/register - Barber already exists: user_id=%d", actor.UserID)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /barbers/register - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /barbers/register - Failed to register barber: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /barbers/register - Barber registered: barber_id=%d, user_id=%d", result.ID, result.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
