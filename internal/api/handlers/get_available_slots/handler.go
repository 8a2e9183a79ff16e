package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberService/internal/api/handlers"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgMissingDate     = "дата обязательна"
	msgInvalidParams   = "некорректный формат параметров: date ожидается YYYY-MM-DD, serviceId и durationMinutes числа"
	msgMissingDuration = "нужно указать serviceId или durationMinutes"
	msgInvalidDuration = "некорректная длительность"
	msgServiceNotFound = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/available-slots
// Query params: date (required, YYYY-MM-DD), serviceId или durationMinutes
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/available-slots - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /barbers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	serviceIDStr := query.Get("serviceId")
	durationStr := query.Get("durationMinutes")
	if serviceIDStr == "" && durationStr == "" {
		h.logger.Warn("GET /barbers/{id}/available-slots - Missing serviceId and durationMinutes: barber_id=%d", barberID)
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(barberID, dateStr, serviceIDStr, durationStr)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /barbers/{id}/available-slots - Service not found: barber_id=%d, service_id=%s",
				barberID, serviceIDStr)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/available-slots - Invalid input: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /barbers/{id}/available-slots - Failed to get slots: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /barbers/{id}/available-slots - Slots retrieved successfully: barber_id=%d, date=%s, slots_count=%d",
		barberID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
