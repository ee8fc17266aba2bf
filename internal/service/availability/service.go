package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/storage/limits"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

// Params параметры расчета доступности
type Params struct {
	DefaultDailyLimit int
	Location          *time.Location
	LookaheadMonths   int
}

// Service сервис расчета доступности дат
type Service struct {
	limitRepo    LimitRepository
	bookingRepo  BookingRepository
	cache        Cache
	params       Params
	timeProvider TimeProvider
	logger       Logger
}

func NewService(limitRepo LimitRepository, bookingRepo BookingRepository, cache Cache, params Params, logger Logger) *Service {
	if params.DefaultDailyLimit <= 0 {
		params.DefaultDailyLimit = domain.DefaultDailyLimit
	}
	if params.Location == nil {
		params.Location = time.UTC
	}
	if params.LookaheadMonths <= 0 {
		params.LookaheadMonths = domain.DefaultLookaheadMonths
	}

	return &Service{
		limitRepo:    limitRepo,
		bookingRepo:  bookingRepo,
		cache:        cache,
		params:       params,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetTimeProvider устанавливает провайдер времени (используется в тестах)
func (s *Service) SetTimeProvider(provider TimeProvider) {
	s.timeProvider = provider
}

// GetDateAvailability рассчитывает доступность одной даты.
// Принимает канонический ключ дня (нормализация выполняется один раз на
// границе API). Лимит ищется сначала для конкретного тура, затем для
// "default", иначе берется лимит по умолчанию из конфигурации.
func (s *Service) GetDateAvailability(ctx context.Context, key datekey.Key, tour domain.TourFilter) (*domain.DateAvailability, error) {
	if key.IsZero() {
		return nil, fmt.Errorf("%w: GetDateAvailability - date is required", ErrInvalidInput)
	}

	effectiveLimit, err := s.resolveLimit(ctx, key, tour)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.FindConfirmed(ctx, key.Time(), tour)
	if err != nil {
		s.logger.Error("GetDateAvailability: failed to load bookings for %s: %v", key, err)
		return nil, fmt.Errorf("%w: GetDateAvailability - failed to load bookings: %v", ErrStore, err)
	}

	result := domain.NewDateAvailability(key.Time(), tour.SlugPtr(), effectiveLimit, sumPartySizes(bookings))
	return &result, nil
}

// GetDatesInRange рассчитывает доступность каждой даты диапазона
// (ключи дней канонические, границы включительно). Результат всегда
// полный и отсортирован по возрастанию дат: по одной записи на каждый
// календарный день от start до end. Длина диапазона ограничена
// MaxRangeDays — это предел внешнего запроса, внутренние окна движка
// под него не попадают.
func (s *Service) GetDatesInRange(ctx context.Context, startKey, endKey datekey.Key, tour domain.TourFilter) ([]domain.DateAvailability, error) {
	if startKey.IsZero() || endKey.IsZero() {
		return nil, fmt.Errorf("%w: GetDatesInRange - start and end dates are required", ErrInvalidInput)
	}
	if days := datekey.DaysBetween(startKey, endKey) + 1; days > domain.MaxRangeDays {
		return nil, fmt.Errorf("%w: GetDatesInRange - range of %d days exceeds maximum of %d", ErrInvalidRange, days, domain.MaxRangeDays)
	}

	return s.rangeByKey(ctx, startKey, endKey, tour)
}

// GetDatesForTour возвращает доступность тура от сегодняшнего дня на
// LookaheadMonths вперед. Результат кэшируется по slug тура; ошибки
// кэша логируются и не прерывают расчет.
func (s *Service) GetDatesForTour(ctx context.Context, tourSlug string) ([]domain.DateAvailability, error) {
	tour := domain.ParseTourFilter(tourSlug)

	cacheKey := domain.AllToursSentinel
	if !tour.IsAny() {
		cacheKey = tour.Slug()
	}

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			s.logger.Warn("GetDatesForTour: cache read failed for %s: %v", cacheKey, err)
		} else if found {
			return cached, nil
		}
	}

	today := datekey.FromTime(s.timeProvider.Now(), s.params.Location)
	endKey := today.AddMonths(s.params.LookaheadMonths)

	values, err := s.rangeByKey(ctx, today, endKey, tour)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, values); err != nil {
			s.logger.Warn("GetDatesForTour: cache write failed for %s: %v", cacheKey, err)
		}
	}

	return values, nil
}

func (s *Service) rangeByKey(ctx context.Context, startKey, endKey datekey.Key, tour domain.TourFilter) ([]domain.DateAvailability, error) {
	if endKey.Before(startKey) {
		return nil, fmt.Errorf("%w: rangeByKey - end date %s is before start date %s", ErrInvalidRange, endKey, startKey)
	}
	days := datekey.DaysBetween(startKey, endKey) + 1

	limitRows, err := s.limitRepo.FindRange(ctx, startKey.Time(), endKey.Time(), tour)
	if err != nil {
		s.logger.Error("rangeByKey: failed to load limits for %s..%s: %v", startKey, endKey, err)
		return nil, fmt.Errorf("%w: rangeByKey - failed to load limits: %v", ErrStore, err)
	}

	bookings, err := s.bookingRepo.FindConfirmedInRange(ctx, startKey.Time(), endKey.Time(), tour)
	if err != nil {
		s.logger.Error("rangeByKey: failed to load bookings for %s..%s: %v", startKey, endKey, err)
		return nil, fmt.Errorf("%w: rangeByKey - failed to load bookings: %v", ErrStore, err)
	}

	tourLimits, defaultLimits := splitLimitsByDate(limitRows)
	booked := groupBookedByDate(bookings)

	result := make([]domain.DateAvailability, 0, days)
	for key := startKey; !key.After(endKey); key = key.AddDays(1) {
		dateStr := key.String()
		limit := effectiveLimitFor(dateStr, tour, tourLimits, defaultLimits, s.params.DefaultDailyLimit)
		result = append(result, domain.NewDateAvailability(key.Time(), tour.SlugPtr(), limit, booked[dateStr]))
	}

	return result, nil
}

// resolveLimit возвращает действующий лимит одной даты: лимит тура,
// затем "default", затем лимит по умолчанию из конфигурации
func (s *Service) resolveLimit(ctx context.Context, key datekey.Key, tour domain.TourFilter) (int, error) {
	if !tour.IsAny() {
		limit, err := s.limitRepo.Find(ctx, key.Time(), tour.Slug())
		if err == nil {
			return limit.MaxBookings, nil
		}
		if !errors.Is(err, limits.ErrLimitNotFound) {
			s.logger.Error("resolveLimit: failed to load limit for tour %s on %s: %v", tour.Slug(), key, err)
			return 0, fmt.Errorf("%w: resolveLimit - failed to load tour limit: %v", ErrStore, err)
		}
	}

	limit, err := s.limitRepo.Find(ctx, key.Time(), domain.DefaultTourSlug)
	if err == nil {
		return limit.MaxBookings, nil
	}
	if !errors.Is(err, limits.ErrLimitNotFound) {
		s.logger.Error("resolveLimit: failed to load default limit on %s: %v", key, err)
		return 0, fmt.Errorf("%w: resolveLimit - failed to load default limit: %v", ErrStore, err)
	}

	return s.params.DefaultDailyLimit, nil
}
