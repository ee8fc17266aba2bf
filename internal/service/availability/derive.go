package availability

import (
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

func sumPartySizes(bookings []*domain.Booking) int {
	total := 0
	for _, b := range bookings {
		total += b.PartySize
	}
	return total
}

// splitLimitsByDate раскладывает лимиты по датам: отдельно лимиты
// конкретных туров и лимиты "default"
func splitLimitsByDate(rows []*domain.BookingLimit) (tourLimits, defaultLimits map[string]int) {
	tourLimits = make(map[string]int, len(rows))
	defaultLimits = make(map[string]int, len(rows))
	for _, row := range rows {
		dateStr := row.Date.UTC().Format(datekey.Format)
		if row.IsDefault() {
			defaultLimits[dateStr] = row.MaxBookings
		} else {
			tourLimits[dateStr] = row.MaxBookings
		}
	}
	return tourLimits, defaultLimits
}

func groupBookedByDate(bookings []*domain.Booking) map[string]int {
	booked := make(map[string]int, len(bookings))
	for _, b := range bookings {
		booked[b.Date.UTC().Format(datekey.Format)] += b.PartySize
	}
	return booked
}

// effectiveLimitFor выбирает действующий лимит даты: лимит тура имеет
// приоритет над "default", иначе берется fallback из конфигурации
func effectiveLimitFor(dateStr string, tour domain.TourFilter, tourLimits, defaultLimits map[string]int, fallback int) int {
	if !tour.IsAny() {
		if limit, ok := tourLimits[dateStr]; ok {
			return limit
		}
	}
	if limit, ok := defaultLimits[dateStr]; ok {
		return limit
	}
	return fallback
}
