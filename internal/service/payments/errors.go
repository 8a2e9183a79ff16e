package payments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrPaymentNotFound возвращается, когда выплата не найдена
	ErrPaymentNotFound = fmt.Errorf("%w: payments: payment not found", domain.ErrNotFound)

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = fmt.Errorf("%w: payments: barber not found", domain.ErrNotFound)

	// ErrAlreadyPaid возвращается, когда выплата уже отмечена оплаченной
	ErrAlreadyPaid = fmt.Errorf("%w: payments: payment is not pending", domain.ErrInvalidTransition)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = fmt.Errorf("%w: payments: access denied", domain.ErrUnauthorized)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments: internal error")
)
