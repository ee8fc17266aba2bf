package get_availability

import (
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

// DateAvailabilityResponse HTTP response model
type DateAvailabilityResponse struct {
	Date            string  `json:"date"`
	TourSlug        *string `json:"tourSlug,omitempty"`
	AvailablePlaces int     `json:"availablePlaces"`
	BookedPlaces    int     `json:"bookedPlaces"`
	TotalPlaces     int     `json:"totalPlaces"`
	IsAvailable     bool    `json:"isAvailable"`
}

// FromDomain конвертирует доменную доступность в HTTP response
func FromDomain(value *domain.DateAvailability) *DateAvailabilityResponse {
	return &DateAvailabilityResponse{
		Date:            value.Date.UTC().Format(datekey.Format),
		TourSlug:        value.TourSlug,
		AvailablePlaces: value.AvailablePlaces,
		BookedPlaces:    value.BookedPlaces,
		TotalPlaces:     value.TotalPlaces,
		IsAvailable:     value.IsAvailable,
	}
}
