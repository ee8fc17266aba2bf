package models

import "time"

// UpdateLimitRequest запрос на установку лимита
type UpdateLimitRequest struct {
	Date        string
	TourSlug    string
	MaxBookings int
}

// ListLimitsRequest запрос списка лимитов за период.
// Пустые даты означают окно по умолчанию: от сегодня на глубину просмотра.
// Пустой TourSlug (или "all") — без фильтра по туру
type ListLimitsRequest struct {
	StartDate string
	EndDate   string
	TourSlug  string
}

// Limit лимит бронирований на дату
type Limit struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	TourSlug        string    `json:"tourSlug"`
	MaxBookings     int       `json:"maxBookings"`
	CurrentBookings int       `json:"currentBookings"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
