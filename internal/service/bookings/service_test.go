package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	storage "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/bookings"
	"github.com/m04kA/SMC-TourBookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(items ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range items {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, reason string) error {
	booking, ok := f.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	now := time.Now()
	booking.Status = domain.StatusCancelled
	booking.CancellationReason = &reason
	booking.CancelledAt = &now
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func confirmedBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		Date:      time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		TourSlug:  ptr.Ptr("carpathian-trek"),
		PartySize: 2,
		Status:    domain.StatusConfirmed,
	}
}

func TestGetByID(t *testing.T) {
	svc := NewService(newFakeBookingRepo(confirmedBooking(7)), nopLogger{})

	result, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), result.ID)
	assert.Equal(t, "2024-05-15", result.Date)
	assert.Equal(t, "confirmed", result.Status)
	require.NotNil(t, result.TourSlug)
	assert.Equal(t, "carpathian-trek", *result.TourSlug)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_InvalidID(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	svc := NewService(newFakeBookingRepo(confirmedBooking(7)), nopLogger{})

	result, err := svc.Cancel(context.Background(), 7, "планы изменились")
	require.NoError(t, err)

	assert.Equal(t, "cancelled", result.Status)
	require.NotNil(t, result.CancellationReason)
	assert.Equal(t, "планы изменились", *result.CancellationReason)
	assert.NotNil(t, result.CancelledAt)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := confirmedBooking(7)
	booking.Status = domain.StatusCancelled
	svc := NewService(newFakeBookingRepo(booking), nopLogger{})

	_, err := svc.Cancel(context.Background(), 7, "")
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.Cancel(context.Background(), 42, "")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc := NewService(newFakeBookingRepo(confirmedBooking(7)), nopLogger{})

	_, err := svc.Cancel(context.Background(), 7, strings.Repeat("x", domain.MaxCancellationReasonLength+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
