package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date          string `json:"date"`
	TourSlug      string `json:"tourSlug"`
	PartySize     int    `json:"partySize"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Notes         string `json:"notes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		Date:          r.Date,
		TourSlug:      r.TourSlug,
		PartySize:     r.PartySize,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Notes:         r.Notes,
	}
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	TourSlug        *string   `json:"tourSlug,omitempty"`
	PartySize       int       `json:"partySize"`
	Status          string    `json:"status"`
	AvailablePlaces int       `json:"availablePlaces"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		Date:            resp.Date,
		TourSlug:        resp.TourSlug,
		PartySize:       resp.PartySize,
		Status:          resp.Status,
		AvailablePlaces: resp.AvailablePlaces,
		CreatedAt:       resp.CreatedAt,
	}
}
