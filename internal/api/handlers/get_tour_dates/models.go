package get_tour_dates

import (
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

// TourDatesResponse HTTP response model
type TourDatesResponse struct {
	TourSlug string     `json:"tourSlug"`
	Dates    []TourDate `json:"dates"`
}

// TourDate доступность одной даты тура
type TourDate struct {
	Date            string `json:"date"`
	AvailablePlaces int    `json:"availablePlaces"`
	TotalPlaces     int    `json:"totalPlaces"`
	IsAvailable     bool   `json:"isAvailable"`
}

// FromDomain конвертирует результат движка доступности в HTTP response
func FromDomain(tourSlug string, values []domain.DateAvailability) *TourDatesResponse {
	dates := make([]TourDate, len(values))
	for i, value := range values {
		dates[i] = TourDate{
			Date:            value.Date.UTC().Format(datekey.Format),
			AvailablePlaces: value.AvailablePlaces,
			TotalPlaces:     value.TotalPlaces,
			IsAvailable:     value.IsAvailable,
		}
	}

	return &TourDatesResponse{
		TourSlug: tourSlug,
		Dates:    dates,
	}
}
