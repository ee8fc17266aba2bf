package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/storage/limits"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
	"github.com/m04kA/SMC-TourBookingService/pkg/ptr"
)

// Params параметры создания бронирования
type Params struct {
	DefaultDailyLimit int
	Location          *time.Location
}

// Usecase создание бронирования с проверкой доступности мест
//
// Проверка и вставка выполняются в одной сериализуемой транзакции:
// параллельные запросы на одну дату не могут пробить лимит
type Usecase struct {
	txManager   TxManager
	bookingRepo BookingRepository
	limitRepo   LimitRepository
	params      Params
	logger      Logger
}

func NewUseCase(txManager TxManager, bookingRepo BookingRepository, limitRepo LimitRepository, params Params, logger Logger) *Usecase {
	if params.DefaultDailyLimit <= 0 {
		params.DefaultDailyLimit = domain.DefaultDailyLimit
	}
	if params.Location == nil {
		params.Location = time.UTC
	}

	return &Usecase{
		txManager:   txManager,
		bookingRepo: bookingRepo,
		limitRepo:   limitRepo,
		params:      params,
		logger:      logger,
	}
}

// Execute создает бронирование, если на дату хватает свободных мест
func (u *Usecase) Execute(ctx context.Context, req *Request) (*Response, error) {
	key, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	tour := domain.ParseTourFilter(req.TourSlug)

	var created *domain.Booking
	var availableAfter int

	err = u.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		effectiveLimit, err := u.resolveLimit(txCtx, key, tour)
		if err != nil {
			return err
		}

		if effectiveLimit == 0 {
			return fmt.Errorf("%w: Execute - date %s is closed for booking", ErrDateBlocked, key)
		}

		// FOR UPDATE внутри транзакции: строки даты блокируются до коммита
		existing, err := u.bookingRepo.FindConfirmed(txCtx, key.Time(), tour)
		if err != nil {
			u.logger.Error("Execute: failed to load bookings for %s: %v", key, err)
			return fmt.Errorf("%w: Execute - failed to load bookings: %v", ErrStore, err)
		}

		booked := 0
		for _, b := range existing {
			booked += b.PartySize
		}

		if booked+req.PartySize > effectiveLimit {
			return fmt.Errorf("%w: Execute - %d of %d places taken on %s, requested %d",
				ErrNotEnoughPlaces, booked, effectiveLimit, key, req.PartySize)
		}

		booking := &domain.Booking{
			Date:          key.Time(),
			TourSlug:      tour.SlugPtr(),
			PartySize:     req.PartySize,
			Status:        domain.StatusConfirmed,
			CustomerName:  optional(req.CustomerName),
			CustomerEmail: optional(req.CustomerEmail),
			Notes:         optional(req.Notes),
		}

		created, err = u.bookingRepo.Create(txCtx, booking)
		if err != nil {
			u.logger.Error("Execute: failed to create booking for %s: %v", key, err)
			return fmt.Errorf("%w: Execute - failed to create booking: %v", ErrStore, err)
		}

		availableAfter = effectiveLimit - booked - req.PartySize
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("Execute: booking %d created for %s, %d places left", created.ID, key, availableAfter)

	return &Response{
		ID:              created.ID,
		Date:            key.String(),
		TourSlug:        created.TourSlug,
		PartySize:       created.PartySize,
		Status:          string(created.Status),
		AvailablePlaces: availableAfter,
		CreatedAt:       created.CreatedAt,
	}, nil
}

// resolveLimit возвращает действующий лимит даты: лимит тура,
// затем "default", затем лимит по умолчанию из конфигурации
func (u *Usecase) resolveLimit(ctx context.Context, key datekey.Key, tour domain.TourFilter) (int, error) {
	if !tour.IsAny() {
		limit, err := u.limitRepo.Find(ctx, key.Time(), tour.Slug())
		if err == nil {
			return limit.MaxBookings, nil
		}
		if !errors.Is(err, limits.ErrLimitNotFound) {
			u.logger.Error("resolveLimit: failed to load limit for tour %s on %s: %v", tour.Slug(), key, err)
			return 0, fmt.Errorf("%w: resolveLimit - failed to load tour limit: %v", ErrStore, err)
		}
	}

	limit, err := u.limitRepo.Find(ctx, key.Time(), domain.DefaultTourSlug)
	if err == nil {
		return limit.MaxBookings, nil
	}
	if !errors.Is(err, limits.ErrLimitNotFound) {
		u.logger.Error("resolveLimit: failed to load default limit on %s: %v", key, err)
		return 0, fmt.Errorf("%w: resolveLimit - failed to load default limit: %v", ErrStore, err)
	}

	return u.params.DefaultDailyLimit, nil
}

func optional(value string) *string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return ptr.Ptr(trimmed)
	}
	return nil
}
