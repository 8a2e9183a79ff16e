package transition_appointment

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if !req.TargetStatus.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.TargetStatus)
	}

	return nil
}
