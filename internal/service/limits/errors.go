package limits

import "errors"

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("limits: invalid input data")
	// ErrPersistence запись лимита не применена хранилищем
	ErrPersistence = errors.New("limits: persistence error")
)
