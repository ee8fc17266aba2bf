package limits

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/limits/models"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

// Service сервис управления лимитами бронирований
type Service struct {
	repo         LimitRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

func NewService(repo LimitRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}

	return &Service{
		repo:         repo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetTimeProvider устанавливает провайдер времени (используется в тестах)
func (s *Service) SetTimeProvider(provider TimeProvider) {
	s.timeProvider = provider
}

// Update устанавливает лимит бронирований для пары (дата, тур).
// Дата нормализуется к календарному дню, пустой slug и "all" приводятся
// к записи "default". Операция идемпотентна: повторная установка того же
// значения не меняет результат
func (s *Service) Update(ctx context.Context, req models.UpdateLimitRequest) (*models.Limit, error) {
	key, err := datekey.Parse(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - invalid date %q: %v", ErrInvalidInput, req.Date, err)
	}
	if req.MaxBookings < domain.MinMaxBookings || req.MaxBookings > domain.MaxMaxBookings {
		return nil, fmt.Errorf("%w: Update - maxBookings must be between %d and %d", ErrInvalidInput, domain.MinMaxBookings, domain.MaxMaxBookings)
	}

	tourSlug := domain.NormalizeTourSlug(req.TourSlug)

	limit, err := s.repo.Upsert(ctx, key.Time(), tourSlug, req.MaxBookings)
	if err != nil {
		s.logger.Error("Update: failed to upsert limit for %s/%s: %v", key, tourSlug, err)
		return nil, fmt.Errorf("%w: Update - failed to upsert limit: %v", ErrPersistence, err)
	}

	s.logger.Info("Update: limit for %s/%s set to %d", key, tourSlug, req.MaxBookings)

	return toModel(limit), nil
}

// List возвращает лимиты за период для административного списка.
// При пустых границах используется окно от сегодняшнего дня на глубину
// просмотра по умолчанию
func (s *Service) List(ctx context.Context, req models.ListLimitsRequest) ([]models.Limit, error) {
	startKey, endKey, err := s.resolveWindow(req)
	if err != nil {
		return nil, err
	}
	if endKey.Before(startKey) {
		return nil, fmt.Errorf("%w: List - end date %s is before start date %s", ErrInvalidInput, endKey, startKey)
	}

	rows, err := s.repo.FindAll(ctx, startKey.Time(), endKey.Time())
	if err != nil {
		s.logger.Error("List: failed to load limits for %s..%s: %v", startKey, endKey, err)
		return nil, fmt.Errorf("%w: List - failed to load limits: %v", ErrPersistence, err)
	}

	tour := domain.ParseTourFilter(req.TourSlug)

	result := make([]models.Limit, 0, len(rows))
	for _, row := range rows {
		if !tour.IsAny() && row.TourSlug != tour.Slug() {
			continue
		}
		result = append(result, *toModel(row))
	}

	return result, nil
}

func (s *Service) resolveWindow(req models.ListLimitsRequest) (datekey.Key, datekey.Key, error) {
	var startKey, endKey datekey.Key
	var err error

	if req.StartDate != "" {
		startKey, err = datekey.Parse(req.StartDate)
		if err != nil {
			return datekey.Key{}, datekey.Key{}, fmt.Errorf("%w: List - invalid start date %q: %v", ErrInvalidInput, req.StartDate, err)
		}
	} else {
		startKey = datekey.FromTime(s.timeProvider.Now(), s.location)
	}

	if req.EndDate != "" {
		endKey, err = datekey.Parse(req.EndDate)
		if err != nil {
			return datekey.Key{}, datekey.Key{}, fmt.Errorf("%w: List - invalid end date %q: %v", ErrInvalidInput, req.EndDate, err)
		}
	} else {
		endKey = startKey.AddMonths(domain.DefaultLookaheadMonths)
	}

	return startKey, endKey, nil
}

func toModel(limit *domain.BookingLimit) *models.Limit {
	return &models.Limit{
		ID:              limit.ID,
		Date:            limit.Date.UTC().Format(datekey.Format),
		TourSlug:        limit.TourSlug,
		MaxBookings:     limit.MaxBookings,
		CurrentBookings: limit.CurrentBookings,
		CreatedAt:       limit.CreatedAt,
		UpdatedAt:       limit.UpdatedAt,
	}
}
