package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgDateBlocked        = "выбранная дата закрыта для бронирования"
	msgNotEnoughPlaces    = "недостаточно свободных мест на выбранную дату"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: user_id=%s, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: date=%s, tour=%s, error=%v", req.Date, req.TourSlug, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrDateBlocked):
			h.logger.Warn("POST /bookings - Date blocked: date=%s, tour=%s", req.Date, req.TourSlug)
			handlers.RespondError(w, http.StatusConflict, msgDateBlocked)

		case errors.Is(err, createBooking.ErrNotEnoughPlaces):
			h.logger.Warn("POST /bookings - Not enough places: date=%s, tour=%s, party_size=%d", req.Date, req.TourSlug, req.PartySize)
			handlers.RespondError(w, http.StatusConflict, msgNotEnoughPlaces)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, tour=%s, error=%v", req.Date, req.TourSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%s, date=%s, tour=%s",
		result.ID, userID, req.Date, req.TourSlug)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
