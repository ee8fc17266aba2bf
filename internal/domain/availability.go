package domain

import "time"

// DateAvailability derived availability of a tour date (not persisted)
type DateAvailability struct {
	Date            time.Time // полночь UTC
	TourSlug        *string   // nil = расчет без фильтра по туру
	AvailablePlaces int
	BookedPlaces    int
	TotalPlaces     int // действующий лимит на дату
	IsAvailable     bool
}

// NewDateAvailability применяет правило вывода доступности
//
//	effectiveLimit = лимит тура ?? дефолтный лимит ?? DefaultDailyLimit
//	availablePlaces = max(0, effectiveLimit - booked)
//	isAvailable = effectiveLimit > 0 && booked < effectiveLimit
//
// Лимит 0 принудительно закрывает день независимо от числа бронирований
func NewDateAvailability(date time.Time, tourSlug *string, effectiveLimit int, booked int) DateAvailability {
	available := effectiveLimit - booked
	if available < 0 {
		available = 0
	}

	return DateAvailability{
		Date:            date,
		TourSlug:        tourSlug,
		AvailablePlaces: available,
		BookedPlaces:    booked,
		TotalPlaces:     effectiveLimit,
		IsAvailable:     effectiveLimit > 0 && booked < effectiveLimit,
	}
}
