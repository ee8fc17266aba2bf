package datekey

import (
	"fmt"
	"time"
)

// Format формат календарной даты в API и хранилище
const Format = "2006-01-02"

// Key канонический ключ календарного дня: полночь UTC
//
// Все компоненты сервиса группируют и сравнивают даты только через Key.
// Два момента времени, приходящиеся на один календарный день в рабочей
// таймзоне сайта, всегда дают одинаковый ключ независимо от таймзоны сервера.
type Key struct {
	t time.Time
}

// FromTime нормализует момент времени в ключ дня
// Календарный день берется в таймзоне loc (nil = UTC), затем фиксируется
// как полночь UTC для хранения и запросов
func FromTime(t time.Time, loc *time.Location) Key {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Key{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Parse парсит ключ из строки формата YYYY-MM-DD
func Parse(s string) (Key, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Key{}, fmt.Errorf("datekey: invalid date %q: %w", s, err)
	}
	return Key{t: t}, nil
}

// Time возвращает ключ как полночь UTC (значение для хранилища)
func (k Key) Time() time.Time {
	return k.t
}

// Display возвращает локальную полночь того же календарного дня в loc
// Обратная операция к FromTime: календарный день сохраняется
func (k Key) Display(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := k.t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// String возвращает ключ в формате YYYY-MM-DD
func (k Key) String() string {
	return k.t.Format(Format)
}

// AddDays возвращает ключ дня, отстоящего на n календарных дней
func (k Key) AddDays(n int) Key {
	return Key{t: k.t.AddDate(0, 0, n)}
}

// AddMonths возвращает ключ дня, отстоящего на n календарных месяцев
func (k Key) AddMonths(n int) Key {
	return Key{t: k.t.AddDate(0, n, 0)}
}

// Before сообщает, что k раньше other
func (k Key) Before(other Key) bool {
	return k.t.Before(other.t)
}

// After сообщает, что k позже other
func (k Key) After(other Key) bool {
	return k.t.After(other.t)
}

// Equal сообщает, что ключи указывают на один день
func (k Key) Equal(other Key) bool {
	return k.t.Equal(other.t)
}

// IsZero сообщает, что ключ не инициализирован
func (k Key) IsZero() bool {
	return k.t.IsZero()
}

// DaysBetween возвращает число дней от start до end (end - start)
func DaysBetween(start, end Key) int {
	return int(end.t.Sub(start.t) / (24 * time.Hour))
}
