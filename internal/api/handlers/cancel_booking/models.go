package cancel_booking

// CancelBookingRequest HTTP request model
// Тело запроса опционально: отмена без причины допустима
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}
