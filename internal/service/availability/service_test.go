package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/cache"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/storage/limits"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

type fakeLimitRepo struct {
	// ключ "2024-05-15|carpathian-trek"
	limits    map[string]int
	findCalls int
	rangeErr  error
}

func (f *fakeLimitRepo) Find(ctx context.Context, date time.Time, tourSlug string) (*domain.BookingLimit, error) {
	f.findCalls++
	key := date.UTC().Format(datekey.Format) + "|" + tourSlug
	max, ok := f.limits[key]
	if !ok {
		return nil, limits.ErrLimitNotFound
	}
	return &domain.BookingLimit{
		Date:        date,
		TourSlug:    tourSlug,
		MaxBookings: max,
	}, nil
}

func (f *fakeLimitRepo) FindRange(ctx context.Context, start, end time.Time, tour domain.TourFilter) ([]*domain.BookingLimit, error) {
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	var rows []*domain.BookingLimit
	for key := datekey.FromTime(start, time.UTC); !key.After(datekey.FromTime(end, time.UTC)); key = key.AddDays(1) {
		for _, slug := range rangeSlugs(tour) {
			if max, ok := f.limits[key.String()+"|"+slug]; ok {
				rows = append(rows, &domain.BookingLimit{Date: key.Time(), TourSlug: slug, MaxBookings: max})
			}
		}
	}
	return rows, nil
}

func rangeSlugs(tour domain.TourFilter) []string {
	if tour.IsAny() {
		return []string{domain.DefaultTourSlug}
	}
	return []string{tour.Slug(), domain.DefaultTourSlug}
}

type fakeBookingRepo struct {
	bookings   []*domain.Booking
	rangeCalls int
	err        error
}

func (f *fakeBookingRepo) FindConfirmed(ctx context.Context, date time.Time, tour domain.TourFilter) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.Date.Equal(date) && b.CountsTowardCapacity() && matchesTour(b, tour) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) FindConfirmedInRange(ctx context.Context, start, end time.Time, tour domain.TourFilter) ([]*domain.Booking, error) {
	f.rangeCalls++
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.Booking
	for _, b := range f.bookings {
		if !b.Date.Before(start) && !b.Date.After(end) && b.CountsTowardCapacity() && matchesTour(b, tour) {
			result = append(result, b)
		}
	}
	return result, nil
}

func matchesTour(b *domain.Booking, tour domain.TourFilter) bool {
	if tour.IsAny() {
		return true
	}
	return b.TourSlug != nil && *b.TourSlug == tour.Slug()
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	return mustKey(t, value).Time()
}

func mustKey(t *testing.T, value string) datekey.Key {
	t.Helper()
	key, err := datekey.Parse(value)
	require.NoError(t, err)
	return key
}

func confirmed(t *testing.T, date, slug string, partySize int) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		Date:      mustDate(t, date),
		PartySize: partySize,
		Status:    domain.StatusConfirmed,
	}
	if slug != "" {
		b.TourSlug = &slug
	}
	return b
}

func newTestService(limitRepo *fakeLimitRepo, bookingRepo *fakeBookingRepo) *Service {
	return NewService(limitRepo, bookingRepo, nil, Params{
		DefaultDailyLimit: 10,
		Location:          time.UTC,
		LookaheadMonths:   3,
	}, nopLogger{})
}

func TestGetDateAvailability_DefaultsWithoutLimitsAndBookings(t *testing.T) {
	svc := newTestService(&fakeLimitRepo{limits: map[string]int{}}, &fakeBookingRepo{})

	result, err := svc.GetDateAvailability(context.Background(), mustKey(t, "2024-05-15"), domain.AnyTour())
	require.NoError(t, err)

	assert.Equal(t, 10, result.TotalPlaces)
	assert.Equal(t, 10, result.AvailablePlaces)
	assert.Equal(t, 0, result.BookedPlaces)
	assert.True(t, result.IsAvailable)
	assert.Nil(t, result.TourSlug)
}

func TestGetDateAvailability_TourLimitOverridesDefault(t *testing.T) {
	limitRepo := &fakeLimitRepo{limits: map[string]int{
		"2024-05-15|carpathian-trek": 20,
		"2024-05-15|default":         5,
	}}
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{
		confirmed(t, "2024-05-15", "carpathian-trek", 4),
		confirmed(t, "2024-05-15", "carpathian-trek", 5),
	}}
	svc := newTestService(limitRepo, bookingRepo)

	result, err := svc.GetDateAvailability(context.Background(), mustKey(t, "2024-05-15"), domain.OneTour("carpathian-trek"))
	require.NoError(t, err)

	assert.Equal(t, 20, result.TotalPlaces)
	assert.Equal(t, 9, result.BookedPlaces)
	assert.Equal(t, 11, result.AvailablePlaces)
	assert.True(t, result.IsAvailable)
	require.NotNil(t, result.TourSlug)
	assert.Equal(t, "carpathian-trek", *result.TourSlug)
}

func TestGetDateAvailability_LimitBelowBookedClampsToZero(t *testing.T) {
	limitRepo := &fakeLimitRepo{limits: map[string]int{
		"2024-05-15|carpathian-trek": 9,
	}}
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{
		confirmed(t, "2024-05-15", "carpathian-trek", 9),
	}}
	svc := newTestService(limitRepo, bookingRepo)

	result, err := svc.GetDateAvailability(context.Background(), mustKey(t, "2024-05-15"), domain.OneTour("carpathian-trek"))
	require.NoError(t, err)

	assert.Equal(t, 0, result.AvailablePlaces)
	assert.False(t, result.IsAvailable)
}

func TestGetDateAvailability_CancelledBookingsFreePlaces(t *testing.T) {
	cancelled := confirmed(t, "2024-05-15", "carpathian-trek", 5)
	cancelled.Status = domain.StatusCancelled
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{
		cancelled,
		confirmed(t, "2024-05-15", "carpathian-trek", 2),
	}}
	svc := newTestService(&fakeLimitRepo{limits: map[string]int{}}, bookingRepo)

	result, err := svc.GetDateAvailability(context.Background(), mustKey(t, "2024-05-15"), domain.OneTour("carpathian-trek"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.BookedPlaces, "отмененные бронирования не занимают места")
	assert.Equal(t, 8, result.AvailablePlaces)
}

func TestGetDateAvailability_ZeroLimitBlocksDate(t *testing.T) {
	limitRepo := &fakeLimitRepo{limits: map[string]int{
		"2024-05-15|default": 0,
	}}
	svc := newTestService(limitRepo, &fakeBookingRepo{})

	result, err := svc.GetDateAvailability(context.Background(), mustKey(t, "2024-05-15"), domain.AnyTour())
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalPlaces)
	assert.Equal(t, 0, result.AvailablePlaces)
	assert.False(t, result.IsAvailable)
}

func TestGetDateAvailability_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := newTestService(&fakeLimitRepo{limits: map[string]int{}}, &fakeBookingRepo{err: storeErr})

	_, err := svc.GetDateAvailability(context.Background(), mustKey(t, "2024-05-15"), domain.AnyTour())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStore)
}

func TestGetDateAvailability_ZeroDate(t *testing.T) {
	svc := newTestService(&fakeLimitRepo{limits: map[string]int{}}, &fakeBookingRepo{})

	_, err := svc.GetDateAvailability(context.Background(), datekey.Key{}, domain.AnyTour())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDatesInRange_CompleteAndAscending(t *testing.T) {
	limitRepo := &fakeLimitRepo{limits: map[string]int{
		"2024-05-16|default": 3,
	}}
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{
		confirmed(t, "2024-05-16", "carpathian-trek", 2),
		confirmed(t, "2024-05-18", "lviv-walk", 1),
	}}
	svc := newTestService(limitRepo, bookingRepo)

	result, err := svc.GetDatesInRange(context.Background(), mustKey(t, "2024-05-14"), mustKey(t, "2024-05-18"), domain.AnyTour())
	require.NoError(t, err)
	require.Len(t, result, 5)

	for i, expected := range []string{"2024-05-14", "2024-05-15", "2024-05-16", "2024-05-17", "2024-05-18"} {
		assert.Equal(t, expected, result[i].Date.UTC().Format(datekey.Format))
	}

	// 2024-05-16: лимит 3, забронировано 2
	assert.Equal(t, 3, result[2].TotalPlaces)
	assert.Equal(t, 2, result[2].BookedPlaces)
	assert.Equal(t, 1, result[2].AvailablePlaces)
	assert.True(t, result[2].IsAvailable)

	// 2024-05-18: лимита нет, берется лимит по умолчанию
	assert.Equal(t, 10, result[4].TotalPlaces)
	assert.Equal(t, 1, result[4].BookedPlaces)
	assert.Equal(t, 9, result[4].AvailablePlaces)

	// даты без лимитов и бронирований полностью свободны
	assert.Equal(t, 10, result[0].AvailablePlaces)
	assert.Equal(t, 0, result[0].BookedPlaces)
}

func TestGetDatesInRange_TourFilterIgnoresOtherTours(t *testing.T) {
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{
		confirmed(t, "2024-05-15", "carpathian-trek", 4),
		confirmed(t, "2024-05-15", "lviv-walk", 6),
	}}
	svc := newTestService(&fakeLimitRepo{limits: map[string]int{}}, bookingRepo)

	result, err := svc.GetDatesInRange(context.Background(), mustKey(t, "2024-05-15"), mustKey(t, "2024-05-15"), domain.OneTour("carpathian-trek"))
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, 4, result[0].BookedPlaces)
	assert.Equal(t, 6, result[0].AvailablePlaces)
}

func TestGetDatesInRange_EndBeforeStart(t *testing.T) {
	svc := newTestService(&fakeLimitRepo{limits: map[string]int{}}, &fakeBookingRepo{})

	_, err := svc.GetDatesInRange(context.Background(), mustKey(t, "2024-05-18"), mustKey(t, "2024-05-14"), domain.AnyTour())
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGetDatesInRange_TooLong(t *testing.T) {
	svc := newTestService(&fakeLimitRepo{limits: map[string]int{}}, &fakeBookingRepo{})

	start := mustKey(t, "2024-01-01")
	end := start.AddDays(domain.MaxRangeDays)

	_, err := svc.GetDatesInRange(context.Background(), start, end, domain.AnyTour())
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGetDatesForTour_LookaheadWindow(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	svc := newTestService(&fakeLimitRepo{limits: map[string]int{}}, bookingRepo)
	svc.SetTimeProvider(&fakeClock{now: mustDate(t, "2024-05-15")})

	result, err := svc.GetDatesForTour(context.Background(), "carpathian-trek")
	require.NoError(t, err)

	today := datekey.FromTime(mustDate(t, "2024-05-15"), time.UTC)
	wantLen := datekey.DaysBetween(today, today.AddMonths(3)) + 1
	require.Len(t, result, wantLen)

	assert.Equal(t, "2024-05-15", result[0].Date.UTC().Format(datekey.Format))
	assert.Equal(t, "2024-08-15", result[len(result)-1].Date.UTC().Format(datekey.Format))
}

func TestGetDatesForTour_CacheHitSkipsStores(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	clock := &fakeClock{now: mustDate(t, "2024-05-15")}
	avCache := cache.NewMemory(10*time.Minute, clock.Now)

	svc := NewService(&fakeLimitRepo{limits: map[string]int{}}, bookingRepo, avCache, Params{
		DefaultDailyLimit: 10,
		Location:          time.UTC,
		LookaheadMonths:   3,
	}, nopLogger{})
	svc.SetTimeProvider(clock)

	first, err := svc.GetDatesForTour(context.Background(), "carpathian-trek")
	require.NoError(t, err)
	assert.Equal(t, 1, bookingRepo.rangeCalls)

	second, err := svc.GetDatesForTour(context.Background(), "carpathian-trek")
	require.NoError(t, err)
	assert.Equal(t, 1, bookingRepo.rangeCalls, "повторный запрос должен обслуживаться из кэша")
	assert.Equal(t, first, second)
}

func TestGetDatesForTour_CacheExpiryRecomputes(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	clock := &fakeClock{now: mustDate(t, "2024-05-15")}
	avCache := cache.NewMemory(10*time.Minute, clock.Now)

	svc := NewService(&fakeLimitRepo{limits: map[string]int{}}, bookingRepo, avCache, Params{
		DefaultDailyLimit: 10,
		Location:          time.UTC,
		LookaheadMonths:   3,
	}, nopLogger{})
	svc.SetTimeProvider(clock)

	_, err := svc.GetDatesForTour(context.Background(), "carpathian-trek")
	require.NoError(t, err)

	clock.now = clock.now.Add(11 * time.Minute)

	_, err = svc.GetDatesForTour(context.Background(), "carpathian-trek")
	require.NoError(t, err)
	assert.Equal(t, 2, bookingRepo.rangeCalls, "после истечения TTL доступность пересчитывается")
}

func TestGetDateAvailability_WestOfUTCLocationKeepsDate(t *testing.T) {
	limitRepo := &fakeLimitRepo{limits: map[string]int{
		"2024-05-15|default": 5,
	}}
	svc := NewService(limitRepo, &fakeBookingRepo{}, nil, Params{
		DefaultDailyLimit: 10,
		Location:          time.FixedZone("UTC-5", -5*3600),
		LookaheadMonths:   3,
	}, nopLogger{})

	result, err := svc.GetDateAvailability(context.Background(), mustKey(t, "2024-05-15"), domain.AnyTour())
	require.NoError(t, err)

	// ключ дня уже канонический, часовой пояс площадки его не сдвигает
	assert.Equal(t, "2024-05-15", result.Date.UTC().Format(datekey.Format))
	assert.Equal(t, 5, result.TotalPlaces)
}

func TestGetDatesInRange_WestOfUTCLocationKeepsBounds(t *testing.T) {
	limitRepo := &fakeLimitRepo{limits: map[string]int{
		"2024-05-15|default": 5,
	}}
	svc := NewService(limitRepo, &fakeBookingRepo{}, nil, Params{
		DefaultDailyLimit: 10,
		Location:          time.FixedZone("UTC-5", -5*3600),
		LookaheadMonths:   3,
	}, nopLogger{})

	result, err := svc.GetDatesInRange(context.Background(), mustKey(t, "2024-05-15"), mustKey(t, "2024-05-16"), domain.AnyTour())
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "2024-05-15", result[0].Date.UTC().Format(datekey.Format))
	assert.Equal(t, 5, result[0].TotalPlaces)
	assert.Equal(t, "2024-05-16", result[1].Date.UTC().Format(datekey.Format))
	assert.Equal(t, 10, result[1].TotalPlaces)
}

func TestGetDatesForTour_LocalDayDefinesWindowStart(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	svc := NewService(&fakeLimitRepo{limits: map[string]int{}}, bookingRepo, nil, Params{
		DefaultDailyLimit: 10,
		Location:          time.FixedZone("UTC-5", -5*3600),
		LookaheadMonths:   3,
	}, nopLogger{})
	// 03:00 UTC это еще 22:00 предыдущего дня по местному времени
	svc.SetTimeProvider(&fakeClock{now: time.Date(2024, 5, 15, 3, 0, 0, 0, time.UTC)})

	result, err := svc.GetDatesForTour(context.Background(), "carpathian-trek")
	require.NoError(t, err)
	require.NotEmpty(t, result)

	assert.Equal(t, "2024-05-14", result[0].Date.UTC().Format(datekey.Format))
}

func TestGetDatesForTour_LongLookaheadNotCapped(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	svc := NewService(&fakeLimitRepo{limits: map[string]int{}}, bookingRepo, nil, Params{
		DefaultDailyLimit: 10,
		Location:          time.UTC,
		LookaheadMonths:   12,
	}, nopLogger{})
	svc.SetTimeProvider(&fakeClock{now: mustDate(t, "2024-05-15")})

	result, err := svc.GetDatesForTour(context.Background(), "carpathian-trek")
	require.NoError(t, err)

	// окно календаря тура не ограничено пределом внешнего диапазона
	assert.Greater(t, len(result), domain.MaxRangeDays)
	assert.Equal(t, "2025-05-15", result[len(result)-1].Date.UTC().Format(datekey.Format))
}
