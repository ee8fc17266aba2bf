package get_limits

import "github.com/m04kA/SMC-TourBookingService/internal/service/limits/models"

// LimitsResponse HTTP response model
type LimitsResponse struct {
	Limits []models.Limit `json:"limits"`
}
