package transition_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: transition_appointment: appointment not found", domain.ErrNotFound)

	// ErrInvalidTransition возвращается, когда переход запрещен или статус изменился параллельно
	ErrInvalidTransition = fmt.Errorf("%w: transition_appointment", domain.ErrInvalidTransition)

	// ErrAccessDenied возвращается, когда пользователь не администратор и не барбер записи
	ErrAccessDenied = fmt.Errorf("%w: transition_appointment: access denied", domain.ErrUnauthorized)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: transition_appointment", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_appointment: internal error")
)
