package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %w", ErrInvalidInput, err)
	}

	return nil
}

// resolveClient определяет клиента записи
// Клиент записывается только сам; барбер и администратор указывают клиента явно
func resolveClient(req *Request) (int64, error) {
	switch req.Actor.Role {
	case domain.RoleClient:
		if req.ClientID != nil && *req.ClientID != req.Actor.UserID {
			return 0, ErrAccessDenied
		}
		return req.Actor.UserID, nil
	case domain.RoleBarber, domain.RoleAdmin:
		if req.ClientID == nil || *req.ClientID <= 0 {
			return 0, fmt.Errorf("%w: clientId is required when booking on behalf of a client", ErrInvalidInput)
		}
		return *req.ClientID, nil
	default:
		return 0, ErrAccessDenied
	}
}

// validateBookingTime проверяет, что запись начинается не раньше допустимого момента
func validateBookingTime(start, earliest time.Time) error {
	if start.Before(earliest) {
		return fmt.Errorf("%w: start %s is before %s",
			ErrTooLateToBook, start.Format(time.RFC3339), earliest.Format(time.RFC3339))
	}
	return nil
}

// hasOverlap проверяет пересечение [start, end) с блокирующими записями
func hasOverlap(start, end time.Time, appointments []*domain.Appointment) bool {
	for _, a := range appointments {
		if a.IsBlocking() && a.Overlaps(start, end) {
			return true
		}
	}
	return false
}
