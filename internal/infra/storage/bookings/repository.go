package bookings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/psqlbuilder"
)

// bookingColumns колонки таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"booking_date",
	"tour_slug",
	"tour_type",
	"party_size",
	"status",
	"customer_name",
	"customer_email",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её —
// usecase создания бронирования вставляет запись в той же сериализуемой
// транзакции, где проверялась доступность мест
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_date",
			"tour_slug",
			"party_size",
			"status",
			"customer_name",
			"customer_email",
			"notes",
		).
		Values(
			booking.Date,
			booking.TourSlug,
			booking.PartySize,
			booking.Status,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row.Scan)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// FindConfirmed получает подтвержденные бронирования на конкретную дату
// с опциональным фильтром по туру
//
// Внутри транзакции добавляет FOR UPDATE — usecase создания бронирования
// блокирует строки на время проверки доступности мест
func (r *Repository) FindConfirmed(ctx context.Context, date time.Time, tour domain.TourFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		OrderBy("id ASC")

	if clause := tourMatchClause(tour); clause != nil {
		selectBuilder = selectBuilder.Where(clause)
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindConfirmedInRange получает подтвержденные бронирования за период
// (границы включительно) одним запросом — движок доступности считает
// загрузку диапазона без запроса на каждый день
func (r *Repository) FindConfirmedInRange(ctx context.Context, start, end time.Time, tour domain.TourFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.GtOrEq{"booking_date": start}).
		Where(squirrel.LtOrEq{"booking_date": end}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		OrderBy("booking_date ASC, id ASC")

	if clause := tourMatchClause(tour); clause != nil {
		selectBuilder = selectBuilder.Where(clause)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// tourMatchClause строит условие соответствия бронирования фильтру по туру
//
// Легаси-строки несут slug в колонке tour_type вместо tour_slug.
// tour_type учитывается ТОЛЬКО при пустом tour_slug, поэтому одна строка
// не может совпасть дважды под разными историческими именами поля
func tourMatchClause(tour domain.TourFilter) squirrel.Sqlizer {
	if tour.IsAny() {
		return nil
	}

	return squirrel.Or{
		squirrel.Eq{"tour_slug": tour.Slug()},
		squirrel.And{
			squirrel.Eq{"tour_slug": nil},
			squirrel.Eq{"tour_type": tour.Slug()},
		},
	}
}

// scanBooking сканирует одну строку в доменную модель,
// схлопывая легаси tour_type в канонический TourSlug
func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var booking domain.Booking
	var tourSlug, tourType sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&booking.ID,
		&booking.Date,
		&tourSlug,
		&tourType,
		&booking.PartySize,
		&booking.Status,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Нормализация на границе хранилища: движок видит только каноническую схему
	switch {
	case tourSlug.Valid:
		booking.TourSlug = &tourSlug.String
	case tourType.Valid:
		booking.TourSlug = &tourType.String
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		result = append(result, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
