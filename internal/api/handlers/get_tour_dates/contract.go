package get_tour_dates

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

type AvailabilityService interface {
	GetDatesForTour(ctx context.Context, tourSlug string) ([]domain.DateAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
