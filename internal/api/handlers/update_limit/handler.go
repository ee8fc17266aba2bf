package update_limit

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/service/limits"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidLimit       = "некорректные данные лимита"
)

type Handler struct {
	service LimitService
	logger  Logger
}

func NewHandler(service LimitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/limits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateLimitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/limits - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, limits.ErrInvalidInput):
			h.logger.Warn("PUT /admin/limits - Invalid input: date=%s, tour=%s, error=%v", req.Date, req.TourSlug, err)
			handlers.RespondBadRequest(w, msgInvalidLimit)

		default:
			h.logger.Error("PUT /admin/limits - Failed to update limit: date=%s, tour=%s, error=%v", req.Date, req.TourSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/limits - Limit updated: date=%s, tour=%s, max_bookings=%d", result.Date, result.TourSlug, result.MaxBookings)
	handlers.RespondJSON(w, http.StatusOK, result)
}
