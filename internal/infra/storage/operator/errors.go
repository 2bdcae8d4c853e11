package operator

import "errors"

var (
	// ErrOperatorNotFound возвращается, когда оператор не найден
	ErrOperatorNotFound = errors.New("operator.repository: operator not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("operator.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("operator.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("operator.repository: failed to scan row")
)
