package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда выплата не найдена
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrNotUpdated возвращается, когда условное обновление статуса не затронуло ни одной строки
	ErrNotUpdated = errors.New("payment.repository: no rows updated")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
