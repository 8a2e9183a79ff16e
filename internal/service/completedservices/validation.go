package completedservices

import (
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/service/completedservices/models"
)

// validateRecord проверяет запрос на запись выполненной услуги
func validateRecord(clientName string, req *models.RecordRequest) error {
	if req.BarberID <= 0 || req.ServiceID <= 0 {
		return fmt.Errorf("%w: barber and service are required", ErrInvalidInput)
	}
	if clientName == "" || len(clientName) > domain.MaxNameLength {
		return fmt.Errorf("%w: client name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
