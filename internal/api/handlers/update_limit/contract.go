package update_limit

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/limits/models"
)

type LimitService interface {
	Update(ctx context.Context, req models.UpdateLimitRequest) (*models.Limit, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
