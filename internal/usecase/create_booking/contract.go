package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindConfirmed(ctx context.Context, date time.Time, tour domain.TourFilter) ([]*domain.Booking, error)
}

// LimitRepository интерфейс репозитория лимитов
type LimitRepository interface {
	Find(ctx context.Context, date time.Time, tourSlug string) (*domain.BookingLimit, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
