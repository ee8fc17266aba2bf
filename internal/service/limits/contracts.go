package limits

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// LimitRepository интерфейс репозитория лимитов
type LimitRepository interface {
	Upsert(ctx context.Context, date time.Time, tourSlug string, maxBookings int) (*domain.BookingLimit, error)
	FindAll(ctx context.Context, start, end time.Time) ([]*domain.BookingLimit, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
