package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	storage "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/bookings"
	"github.com/m04kA/SMC-TourBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

// Service сервис чтения и отмены бронирований
type Service struct {
	repo   BookingRepository
	logger Logger
}

func NewService(repo BookingRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID возвращает бронирование по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: GetByID - id must be positive", ErrInvalidInput)
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: GetByID - booking %d", ErrBookingNotFound, id)
		}
		s.logger.Error("GetByID: failed to load booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to load booking: %v", ErrStore, err)
	}

	return toModel(booking), nil
}

// Cancel отменяет бронирование. Отменить можно только бронирование
// в статусе pending или confirmed; повторная отмена возвращает ошибку
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*models.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: Cancel - id must be positive", ErrInvalidInput)
	}
	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: Cancel - reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: Cancel - booking %d", ErrBookingNotFound, id)
		}
		s.logger.Error("Cancel: failed to load booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - failed to load booking: %v", ErrStore, err)
	}

	if !booking.CanBeCancelled() {
		return nil, fmt.Errorf("%w: Cancel - booking %d has status %s", ErrCannotCancel, id, booking.Status)
	}

	if err := s.repo.Cancel(ctx, id, reason); err != nil {
		s.logger.Error("Cancel: failed to cancel booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - failed to cancel booking: %v", ErrStore, err)
	}

	s.logger.Info("Cancel: booking %d cancelled", id)

	cancelled, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to reload booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - failed to reload booking: %v", ErrStore, err)
	}

	return toModel(cancelled), nil
}

func toModel(booking *domain.Booking) *models.Booking {
	return &models.Booking{
		ID:                 booking.ID,
		Date:               booking.Date.UTC().Format(datekey.Format),
		TourSlug:           booking.TourSlug,
		PartySize:          booking.PartySize,
		Status:             string(booking.Status),
		CustomerName:       booking.CustomerName,
		CustomerEmail:      booking.CustomerEmail,
		Notes:              booking.Notes,
		CancellationReason: booking.CancellationReason,
		CancelledAt:        booking.CancelledAt,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}
}
