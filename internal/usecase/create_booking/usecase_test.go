package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/storage/limits"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func (f *fakeBookingRepo) FindConfirmed(ctx context.Context, date time.Time, tour domain.TourFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if !b.Date.Equal(date) || b.Status != domain.StatusConfirmed {
			continue
		}
		if !tour.IsAny() && (b.TourSlug == nil || *b.TourSlug != tour.Slug()) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeLimitRepo struct {
	// ключ "2024-05-15|carpathian-trek"
	limits map[string]int
}

func (f *fakeLimitRepo) Find(ctx context.Context, date time.Time, tourSlug string) (*domain.BookingLimit, error) {
	max, ok := f.limits[date.UTC().Format(datekey.Format)+"|"+tourSlug]
	if !ok {
		return nil, limits.ErrLimitNotFound
	}
	return &domain.BookingLimit{Date: date, TourSlug: tourSlug, MaxBookings: max}, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestUsecase(limitValues map[string]int) (*Usecase, *fakeBookingRepo, *fakeTxManager) {
	bookingRepo := &fakeBookingRepo{}
	txManager := &fakeTxManager{}
	uc := NewUseCase(txManager, bookingRepo, &fakeLimitRepo{limits: limitValues}, Params{
		DefaultDailyLimit: 10,
		Location:          time.UTC,
	}, nopLogger{})
	return uc, bookingRepo, txManager
}

func TestExecute_CreatesConfirmedBooking(t *testing.T) {
	uc, bookingRepo, txManager := newTestUsecase(map[string]int{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:          "2024-05-15",
		TourSlug:      "carpathian-trek",
		PartySize:     2,
		CustomerName:  "Олена Ковальчук",
		CustomerEmail: "olena@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "2024-05-15", resp.Date)
	assert.Equal(t, 8, resp.AvailablePlaces)
	assert.Equal(t, 1, txManager.calls, "создание должно идти через сериализуемую транзакцию")
	require.Len(t, bookingRepo.bookings, 1)
	assert.Equal(t, domain.StatusConfirmed, bookingRepo.bookings[0].Status)
}

func TestExecute_RejectsWhenNotEnoughPlaces(t *testing.T) {
	uc, _, _ := newTestUsecase(map[string]int{"2024-05-15|carpathian-trek": 3})

	_, err := uc.Execute(context.Background(), &Request{
		Date:      "2024-05-15",
		TourSlug:  "carpathian-trek",
		PartySize: 2,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		Date:      "2024-05-15",
		TourSlug:  "carpathian-trek",
		PartySize: 2,
	})
	assert.ErrorIs(t, err, ErrNotEnoughPlaces)
}

func TestExecute_FillsDateExactly(t *testing.T) {
	uc, _, _ := newTestUsecase(map[string]int{"2024-05-15|carpathian-trek": 4})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      "2024-05-15",
		TourSlug:  "carpathian-trek",
		PartySize: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AvailablePlaces)
}

func TestExecute_BlockedDate(t *testing.T) {
	uc, _, _ := newTestUsecase(map[string]int{"2024-05-15|default": 0})

	_, err := uc.Execute(context.Background(), &Request{
		Date:      "2024-05-15",
		TourSlug:  "carpathian-trek",
		PartySize: 1,
	})
	assert.ErrorIs(t, err, ErrDateBlocked)
}

func TestExecute_TourLimitOverridesDefault(t *testing.T) {
	uc, _, _ := newTestUsecase(map[string]int{
		"2024-05-15|carpathian-trek": 1,
		"2024-05-15|default":         10,
	})

	_, err := uc.Execute(context.Background(), &Request{
		Date:      "2024-05-15",
		TourSlug:  "carpathian-trek",
		PartySize: 2,
	})
	assert.ErrorIs(t, err, ErrNotEnoughPlaces)
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _ := newTestUsecase(map[string]int{})

	tests := []struct {
		name string
		req  Request
	}{
		{"пустая дата", Request{PartySize: 2}},
		{"мусор вместо даты", Request{Date: "не дата", PartySize: 2}},
		{"нулевой размер группы", Request{Date: "2024-05-15", PartySize: 0}},
		{"слишком большая группа", Request{Date: "2024-05-15", PartySize: domain.MaxPartySize + 1}},
		{"некорректный email", Request{Date: "2024-05-15", PartySize: 2, CustomerEmail: "не email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_BookingWithoutTour(t *testing.T) {
	uc, bookingRepo, _ := newTestUsecase(map[string]int{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      "2024-05-15",
		PartySize: 3,
	})
	require.NoError(t, err)

	assert.Nil(t, resp.TourSlug)
	require.Len(t, bookingRepo.bookings, 1)
	assert.Nil(t, bookingRepo.bookings[0].TourSlug)
}
