package create_booking

import "time"

// Request запрос на создание бронирования
type Request struct {
	Date          string
	TourSlug      string
	PartySize     int
	CustomerName  string
	CustomerEmail string
	Notes         string
}

// Response созданное бронирование
type Response struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	TourSlug        *string   `json:"tourSlug,omitempty"`
	PartySize       int       `json:"partySize"`
	Status          string    `json:"status"`
	AvailablePlaces int       `json:"availablePlaces"`
	CreatedAt       time.Time `json:"createdAt"`
}
