package update_limit

import "github.com/m04kA/SMC-TourBookingService/internal/service/limits/models"

// UpdateLimitRequest HTTP request model
// Пустой tourSlug и "all" означают лимит для всех туров на дату
type UpdateLimitRequest struct {
	Date        string `json:"date"`
	TourSlug    string `json:"tourSlug"`
	MaxBookings int    `json:"maxBookings"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateLimitRequest) ToServiceRequest() models.UpdateLimitRequest {
	return models.UpdateLimitRequest{
		Date:        r.Date,
		TourSlug:    r.TourSlug,
		MaxBookings: r.MaxBookings,
	}
}
