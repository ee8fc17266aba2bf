package domain

import "time"

// BookingLimit represents the maximum number of seats sellable
// for a (date, tour) pair
//
// TourSlug = DefaultTourSlug задает лимит для всех туров на дату;
// лимит для конкретного тура имеет приоритет над дефолтным.
// На пару (limit_date, tour_slug) существует не более одной записи
// (уникальный индекс в хранилище)
type BookingLimit struct {
	ID          int64
	Date        time.Time // полночь UTC (ключ календарного дня)
	TourSlug    string
	MaxBookings int

	// Справочный счетчик, НЕ авторитативный: заполняется нулем при вставке
	// и никогда не перезаписывается при обновлении. Фактическая загрузка
	// всегда считается по подтвержденным бронированиям на момент чтения
	CurrentBookings int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDefault returns true if this is the tour-agnostic fallback limit
func (l *BookingLimit) IsDefault() bool {
	return l.TourSlug == DefaultTourSlug
}

// IsBlocked returns true if the date is deliberately closed for sale
// Лимит, равный нулю, означает "день полностью закрыт", а не "лимит не задан"
func (l *BookingLimit) IsBlocked() bool {
	return l.MaxBookings == 0
}
