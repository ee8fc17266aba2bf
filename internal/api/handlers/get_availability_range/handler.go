package get_availability_range

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/availability"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

const (
	msgMissingStartDate = "начальная дата обязательна"
	msgMissingEndDate   = "конечная дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange     = "некорректный диапазон дат"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/range
// Query params: startDate, endDate (required, YYYY-MM-DD), tourSlug (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("startDate")
	if startStr == "" {
		h.logger.Warn("GET /availability/range - Missing start date")
		handlers.RespondBadRequest(w, msgMissingStartDate)
		return
	}

	endStr := r.URL.Query().Get("endDate")
	if endStr == "" {
		h.logger.Warn("GET /availability/range - Missing end date")
		handlers.RespondBadRequest(w, msgMissingEndDate)
		return
	}

	startKey, err := datekey.Parse(startStr)
	if err != nil {
		h.logger.Warn("GET /availability/range - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endKey, err := datekey.Parse(endStr)
	if err != nil {
		h.logger.Warn("GET /availability/range - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	tour := domain.ParseTourFilter(r.URL.Query().Get("tourSlug"))

	result, err := h.service.GetDatesInRange(r.Context(), startKey, endKey, tour)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("GET /availability/range - Invalid range: %s..%s", startStr, endStr)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /availability/range - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability/range - Failed to get availability: range=%s..%s, error=%v", startStr, endStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/range - Availability retrieved: range=%s..%s, days=%d", startStr, endStr, len(result))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(startStr, endStr, tour, result))
}
