package settle_commissions

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = fmt.Errorf("%w: settle_commissions: barber not found", domain.ErrNotFound)

	// ErrInvalidPeriod возвращается при некорректных границах периода
	ErrInvalidPeriod = fmt.Errorf("%w: settle_commissions", domain.ErrInvalidPeriod)

	// ErrPeriodOverlaps возвращается, когда период пересекается с уже созданной выплатой
	ErrPeriodOverlaps = fmt.Errorf("%w: settle_commissions: period overlaps an existing payment", domain.ErrInvalidPeriod)

	// ErrAccessDenied возвращается, когда расчет запускает не администратор
	ErrAccessDenied = fmt.Errorf("%w: settle_commissions: access denied", domain.ErrUnauthorized)

	// ErrClaimMismatch возвращается, когда часть строк уже забрала другая выплата
	ErrClaimMismatch = errors.New("settle_commissions: claimed rows mismatch")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("settle_commissions: internal error")
)
