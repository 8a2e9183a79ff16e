package completedservices

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrCompletedServiceNotFound возвращается, когда выполненная услуга не найдена
	ErrCompletedServiceNotFound = fmt.Errorf("%w: completedservices: completed service not found", domain.ErrNotFound)

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = fmt.Errorf("%w: completedservices: barber not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга каталога не найдена
	ErrServiceNotFound = fmt.Errorf("%w: completedservices: service not found", domain.ErrNotFound)

	// ErrAlreadyValidated возвращается при повторном подтверждении
	ErrAlreadyValidated = fmt.Errorf("%w: completedservices: already validated", domain.ErrAlreadyValidated)

	// ErrAlreadyRecorded возвращается, когда по записи уже создана выполненная услуга
	ErrAlreadyRecorded = fmt.Errorf("%w: completedservices: appointment already recorded", domain.ErrInvalidTransition)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = fmt.Errorf("%w: completedservices: access denied", domain.ErrUnauthorized)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: completedservices", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("completedservices: internal error")
)
