package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// validateServiceData проверяет поля услуги; nil поля пропускаются
func validateServiceData(name *string, price *decimal.Decimal, duration *int) error {
	if name != nil && (*name == "" || len(*name) > domain.MaxNameLength) {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if price != nil && price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if duration != nil && (*duration < domain.MinServiceDurationMinutes || *duration > domain.MaxServiceDurationMinutes) {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	return nil
}

// validateBarberUpdate проверяет частичное обновление барбера
func validateBarberUpdate(update *domain.BarberUpdate) error {
	if update.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if update.Name != nil && (*update.Name == "" || len(*update.Name) > domain.MaxNameLength) {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if update.PaymentPeriod != nil && !update.PaymentPeriod.IsValid() {
		return fmt.Errorf("%w: unknown payment period %q", ErrInvalidInput, *update.PaymentPeriod)
	}

	if update.CalendarVisibility != nil {
		if !update.CalendarVisibility.IsValid() {
			return fmt.Errorf("%w: unknown calendar visibility %q", ErrInvalidInput, *update.CalendarVisibility)
		}
		if *update.CalendarVisibility == domain.CalendarVisibilitySelected && len(update.VisibleBarberIDs) == 0 {
			return fmt.Errorf("%w: selected visibility requires barber ids", ErrInvalidInput)
		}
		if *update.CalendarVisibility != domain.CalendarVisibilitySelected {
			update.VisibleBarberIDs = nil
		}
	}

	return nil
}
