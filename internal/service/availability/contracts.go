package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// LimitRepository интерфейс репозитория лимитов
type LimitRepository interface {
	Find(ctx context.Context, date time.Time, tourSlug string) (*domain.BookingLimit, error)
	FindRange(ctx context.Context, start, end time.Time, tour domain.TourFilter) ([]*domain.BookingLimit, error)
}

// BookingRepository интерфейс репозитория бронирований
// Движку нужны только подтвержденные бронирования: остальные статусы
// не занимают места
type BookingRepository interface {
	FindConfirmed(ctx context.Context, date time.Time, tour domain.TourFilter) ([]*domain.Booking, error)
	FindConfirmedInRange(ctx context.Context, start, end time.Time, tour domain.TourFilter) ([]*domain.Booking, error)
}

// Cache кэш рассчитанной доступности по турам
// Кэш справочный: его отказ не должен валить запрос, движок пересчитает
// доступность напрямую из хранилищ
type Cache interface {
	Get(ctx context.Context, tourSlug string) ([]domain.DateAvailability, bool, error)
	Set(ctx context.Context, tourSlug string, values []domain.DateAvailability) error
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
