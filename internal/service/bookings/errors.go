package bookings

import "errors"

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("bookings: invalid input data")
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")
	// ErrCannotCancel бронирование нельзя отменить в текущем статусе
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")
	// ErrStore ошибка хранилища
	ErrStore = errors.New("bookings: store error")
)
