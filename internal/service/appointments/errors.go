package appointments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: appointments: appointment not found", domain.ErrNotFound)

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = fmt.Errorf("%w: appointments: barber not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет доступа к записи
	ErrAccessDenied = fmt.Errorf("%w: appointments: access denied", domain.ErrUnauthorized)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: appointments", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
