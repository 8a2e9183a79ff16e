package validate_completed_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/service/completedservices"
)

const (
	msgInvalidID        = "некорректный ID выполненной услуги"
	msgNotFound         = "выполненная услуга не найдена"
	msgForbidden        = "подтверждать услуги может только администратор"
	msgAlreadyValidated = "услуга уже подтверждена"
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

// Handle PATCH /api/v1/completed-services/{id}/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /completed-services/{id}/validate - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /completed-services/{id}/validate - Unauthorized access attempt: id=%d", id)
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.Validate(r.Context(), id, actor)
	if err != nil {
		switch {
		case errors.Is(err, completedservices.ErrCompletedServiceNotFound):
			h.logger.Warn("PATCH /completed-services/{id}/validate - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completedservices.ErrAccessDenied):
			h.logger.Warn("PATCH /completed-services/{id}/validate - Access denied: id=%d, user_id=%d", id, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, completedservices.ErrAlreadyValidated):
			h.logger.Warn("PATCH /completed-services/{id}/validate - Already validated: id=%d", id)
			handlers.RespondConflict(w, msgAlreadyValidated)

		default:
			h.logger.Error("PATCH /completed-services/{id}/validate - Failed to validate: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /completed-services/{id}/validate - Validated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
