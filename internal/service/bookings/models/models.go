package models

import "time"

// Booking бронирование мест на дату тура
type Booking struct {
	ID                 int64      `json:"id"`
	Date               string     `json:"date"`
	TourSlug           *string    `json:"tourSlug,omitempty"`
	PartySize          int        `json:"partySize"`
	Status             string     `json:"status"`
	CustomerName       *string    `json:"customerName,omitempty"`
	CustomerEmail      *string    `json:"customerEmail,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
