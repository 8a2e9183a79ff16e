package create_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = fmt.Errorf("%w: create_appointment: barber not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: create_appointment: service not found", domain.ErrNotFound)

	// ErrBarberInactive возвращается, когда барбер не принимает записи
	ErrBarberInactive = fmt.Errorf("%w: create_appointment: barber is not active", domain.ErrInvalidInput)

	// ErrServiceInactive возвращается, когда услуга выключена
	ErrServiceInactive = fmt.Errorf("%w: create_appointment: service is not active", domain.ErrInvalidInput)

	// ErrTooLateToBook возвращается, когда начало записи в прошлом или раньше минимального времени до записи
	ErrTooLateToBook = fmt.Errorf("%w: create_appointment: too late to book this slot", domain.ErrInvalidInput)

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку слотов или рабочие часы
	ErrInvalidTimeSlot = fmt.Errorf("%w: create_appointment: invalid time slot", domain.ErrInvalidInput)

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = fmt.Errorf("%w: create_appointment: slot is not available", domain.ErrSlotNotAvailable)

	// ErrAccessDenied возвращается, когда пользователь не может записывать от имени клиента
	ErrAccessDenied = fmt.Errorf("%w: create_appointment: access denied", domain.ErrUnauthorized)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_appointment", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
