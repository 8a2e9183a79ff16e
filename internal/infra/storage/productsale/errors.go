package productsale

import "errors"

var (
	// ErrProductSaleNotFound возвращается, когда продажа не найдена
	ErrProductSaleNotFound = errors.New("productsale.repository: product sale not found")

	// ErrNotUpdated возвращается, когда условное обновление не затронуло ни одной строки
	ErrNotUpdated = errors.New("productsale.repository: no rows updated")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("productsale.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("productsale.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("productsale.repository: failed to scan row")
)
