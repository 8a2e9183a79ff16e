package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга для расчета длительности не найдена
	ErrServiceNotFound = fmt.Errorf("%w: get_available_slots: service not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_available_slots", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
