package productsales

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrProductSaleNotFound возвращается, когда продажа не найдена
	ErrProductSaleNotFound = fmt.Errorf("%w: productsales: product sale not found", domain.ErrNotFound)

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = fmt.Errorf("%w: productsales: barber not found", domain.ErrNotFound)

	// ErrAlreadyValidated возвращается при повторном подтверждении
	ErrAlreadyValidated = fmt.Errorf("%w: productsales: already validated", domain.ErrAlreadyValidated)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = fmt.Errorf("%w: productsales: access denied", domain.ErrUnauthorized)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: productsales", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("productsales: internal error")
)
