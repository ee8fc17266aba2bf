package availability

import "errors"

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("availability: invalid input data")
	// ErrInvalidRange некорректный диапазон дат
	ErrInvalidRange = errors.New("availability: invalid date range")
	// ErrStore ошибка хранилища
	ErrStore = errors.New("availability: store error")
)
