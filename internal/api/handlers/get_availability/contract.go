package get_availability

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

type AvailabilityService interface {
	GetDateAvailability(ctx context.Context, key datekey.Key, tour domain.TourFilter) (*domain.DateAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
