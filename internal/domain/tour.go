package domain

import "strings"

// TourFilter фильтр по туру для запросов доступности и бронирований
//
// Разбирается из внешних параметров один раз на границе API: сентинельные
// строки "" и "all" превращаются в AnyTour, дальше по движку и репозиториям
// ходит только этот тип, сырые строки не сравниваются
type TourFilter struct {
	slug string
}

// AnyTour фильтр "без ограничения по туру"
func AnyTour() TourFilter {
	return TourFilter{}
}

// OneTour фильтр по конкретному туру
func OneTour(slug string) TourFilter {
	return TourFilter{slug: slug}
}

// ParseTourFilter разбирает фильтр из внешнего строкового параметра
func ParseTourFilter(raw string) TourFilter {
	slug := strings.TrimSpace(raw)
	if slug == "" || strings.EqualFold(slug, AllToursSentinel) {
		return AnyTour()
	}
	return OneTour(slug)
}

// IsAny returns true if the filter matches any tour
func (f TourFilter) IsAny() bool {
	return f.slug == ""
}

// Slug возвращает slug тура; вызывать только при !IsAny()
func (f TourFilter) Slug() string {
	return f.slug
}

// SlugPtr возвращает slug как *string (nil для AnyTour)
func (f TourFilter) SlugPtr() *string {
	if f.IsAny() {
		return nil
	}
	s := f.slug
	return &s
}

// NormalizeTourSlug нормализует slug тура для хранения лимитов:
// пустое значение и сентинель "all" превращаются в DefaultTourSlug
func NormalizeTourSlug(raw string) string {
	slug := strings.TrimSpace(raw)
	if slug == "" || strings.EqualFold(slug, AllToursSentinel) {
		return DefaultTourSlug
	}
	return slug
}
