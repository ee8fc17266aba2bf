package get_limits

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/service/limits"
	"github.com/m04kA/SMC-TourBookingService/internal/service/limits/models"
)

const (
	msgInvalidWindow = "некорректный период, ожидаются даты YYYY-MM-DD"
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

// Handle GET /api/v1/admin/limits
// Query params: startDate, endDate (optional, YYYY-MM-DD), tourSlug (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := models.ListLimitsRequest{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
		TourSlug:  r.URL.Query().Get("tourSlug"),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, limits.ErrInvalidInput):
			h.logger.Warn("GET /admin/limits - Invalid window: start=%s, end=%s, error=%v", req.StartDate, req.EndDate, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /admin/limits - Failed to list limits: start=%s, end=%s, error=%v", req.StartDate, req.EndDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/limits - Limits retrieved: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, LimitsResponse{Limits: result})
}
