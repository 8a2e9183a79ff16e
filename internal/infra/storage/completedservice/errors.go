package completedservice

import "errors"

var (
	// ErrCompletedServiceNotFound возвращается, когда выполненная услуга не найдена
	ErrCompletedServiceNotFound = errors.New("completedservice.repository: completed service not found")

	// ErrAlreadyRecorded возвращается, когда для записи клиента уже есть выполненная услуга
	ErrAlreadyRecorded = errors.New("completedservice.repository: appointment already recorded")

	// ErrNotUpdated возвращается, когда условное обновление не затронуло ни одной строки
	ErrNotUpdated = errors.New("completedservice.repository: no rows updated")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("completedservice.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("completedservice.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("completedservice.repository: failed to scan row")
)
