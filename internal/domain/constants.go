package domain

// Default configuration values
const (
	// DefaultDailyLimit лимит мест на день, когда лимит не настроен ни для
	// тура, ни по умолчанию
	DefaultDailyLimit = 10

	// DefaultCacheTTLMinutes время жизни кэша доступности по турам
	DefaultCacheTTLMinutes = 10

	// DefaultLookaheadMonths окно календаря доступности тура от сегодня
	DefaultLookaheadMonths = 3
)

// Business validation constants
const (
	MinPartySize = 1
	MaxPartySize = 20

	MinMaxBookings = 0
	MaxMaxBookings = 1000

	// MaxRangeDays максимальная длина диапазона дат в одном запросе
	// (календарь на фронте запрашивает не больше квартала)
	MaxRangeDays = 185

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Tour slug sentinels
const (
	// DefaultTourSlug значение tour_slug для лимита, действующего на все туры
	DefaultTourSlug = "default"

	// AllToursSentinel внешний сентинель "без фильтра по туру";
	// нормализуется на границе API, внутрь движка не проходит
	AllToursSentinel = "all"
)
