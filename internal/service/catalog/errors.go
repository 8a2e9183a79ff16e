package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: catalog: service not found", domain.ErrNotFound)

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = fmt.Errorf("%w: catalog: barber not found", domain.ErrNotFound)

	// ErrBarberAlreadyExists возвращается, когда пользователь уже зарегистрирован как барбер
	ErrBarberAlreadyExists = fmt.Errorf("%w: catalog: barber already registered", domain.ErrInvalidInput)

	// ErrInvalidInvite возвращается, когда токен приглашения недействителен
	ErrInvalidInvite = fmt.Errorf("%w: catalog: invalid invite token", domain.ErrUnauthorized)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = fmt.Errorf("%w: catalog: access denied", domain.ErrUnauthorized)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: catalog", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
