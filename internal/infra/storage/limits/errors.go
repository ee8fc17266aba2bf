package limits

import "errors"

var (
	// ErrLimitNotFound возвращается, когда лимит не найден
	ErrLimitNotFound = errors.New("limits.repository: limit not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("limits.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("limits.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("limits.repository: failed to scan row")

	// ErrNotAcknowledged возвращается, когда upsert лимита не подтвержден
	// хранилищем; вызывающая сторона не должна считать лимит измененным
	ErrNotAcknowledged = errors.New("limits.repository: write not acknowledged")
)
