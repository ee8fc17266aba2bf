package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a seat reservation for a tour date
type Booking struct {
	ID   int64
	Date time.Time // полночь UTC (ключ календарного дня)

	// Канонический slug тура. NULL = бронирование без привязки к конкретному
	// туру. Легаси-поле tour_type схлопывается в TourSlug на границе хранилища
	TourSlug  *string
	PartySize int
	Status    BookingStatus

	CustomerName  *string
	CustomerEmail *string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsTowardCapacity returns true if the booking consumes seats
// Только подтвержденные бронирования занимают места
func (b *Booking) CountsTowardCapacity() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}
