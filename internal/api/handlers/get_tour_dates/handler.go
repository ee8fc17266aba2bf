package get_tour_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/service/availability"
)

const (
	msgMissingTourSlug = "slug тура обязателен"
	msgInvalidInput    = "некорректные параметры запроса"
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

// Handle GET /api/v1/tours/{tourSlug}/available-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourSlug := mux.Vars(r)["tourSlug"]
	if tourSlug == "" {
		h.logger.Warn("GET /tours/{tourSlug}/available-dates - Missing tour slug")
		handlers.RespondBadRequest(w, msgMissingTourSlug)
		return
	}

	result, err := h.service.GetDatesForTour(r.Context(), tourSlug)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput), errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("GET /tours/{tourSlug}/available-dates - Invalid input: tour=%s, error=%v", tourSlug, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /tours/{tourSlug}/available-dates - Failed to get dates: tour=%s, error=%v", tourSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tours/{tourSlug}/available-dates - Dates retrieved: tour=%s, days=%d", tourSlug, len(result))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(tourSlug, result))
}
