package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes == nil && req.ServiceID == nil {
		return fmt.Errorf("%w: serviceId or durationMinutes is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		d := *req.DurationMinutes
		if d < domain.MinServiceDurationMinutes || d > domain.MaxServiceDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
		}
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	return nil
}
