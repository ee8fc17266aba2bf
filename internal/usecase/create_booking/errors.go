package create_booking

import "errors"

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("create_booking: invalid input data")
	// ErrDateBlocked дата закрыта для бронирования
	ErrDateBlocked = errors.New("create_booking: date is blocked")
	// ErrNotEnoughPlaces недостаточно свободных мест на дату
	ErrNotEnoughPlaces = errors.New("create_booking: not enough places")
	// ErrStore ошибка хранилища
	ErrStore = errors.New("create_booking: store error")
)
