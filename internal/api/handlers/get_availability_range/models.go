package get_availability_range

import (
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

// RangeAvailabilityResponse HTTP response model
type RangeAvailabilityResponse struct {
	StartDate string             `json:"startDate"`
	EndDate   string             `json:"endDate"`
	TourSlug  *string            `json:"tourSlug,omitempty"`
	Dates     []DateAvailability `json:"dates"`
}

// DateAvailability доступность одной даты диапазона
type DateAvailability struct {
	Date            string `json:"date"`
	AvailablePlaces int    `json:"availablePlaces"`
	BookedPlaces    int    `json:"bookedPlaces"`
	TotalPlaces     int    `json:"totalPlaces"`
	IsAvailable     bool   `json:"isAvailable"`
}

// FromDomain конвертирует результат движка доступности в HTTP response
func FromDomain(startDate, endDate string, tour domain.TourFilter, values []domain.DateAvailability) *RangeAvailabilityResponse {
	dates := make([]DateAvailability, len(values))
	for i, value := range values {
		dates[i] = DateAvailability{
			Date:            value.Date.UTC().Format(datekey.Format),
			AvailablePlaces: value.AvailablePlaces,
			BookedPlaces:    value.BookedPlaces,
			TotalPlaces:     value.TotalPlaces,
			IsAvailable:     value.IsAvailable,
		}
	}

	return &RangeAvailabilityResponse{
		StartDate: startDate,
		EndDate:   endDate,
		TourSlug:  tour.SlugPtr(),
		Dates:     dates,
	}
}
