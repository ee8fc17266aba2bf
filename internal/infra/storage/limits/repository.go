package limits

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// limitColumns колонки таблицы booking_limits в порядке сканирования
var limitColumns = []string{
	"id",
	"limit_date",
	"tour_slug",
	"max_bookings",
	"current_bookings",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с лимитами бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лимитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Find получает лимит для пары (дата, тур)
func (r *Repository) Find(ctx context.Context, date time.Time, tourSlug string) (*domain.BookingLimit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(limitColumns...).
		From("booking_limits").
		Where(squirrel.Eq{"limit_date": date}).
		Where(squirrel.Eq{"tour_slug": tourSlug}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Find - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	limit, err := scanLimit(row.Scan)

	if err == sql.ErrNoRows {
		return nil, ErrLimitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Find - scan limit: %v", ErrScanRow, err)
	}

	return limit, nil
}

// FindRange получает лимиты за период (границы включительно)
//
// Для фильтра по конкретному туру возвращает и дефолтные записи —
// движок доступности применяет их как fallback для дней без лимита тура.
// Без фильтра по туру к запросу относятся только дефолтные записи
func (r *Repository) FindRange(ctx context.Context, start, end time.Time, tour domain.TourFilter) ([]*domain.BookingLimit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(limitColumns...).
		From("booking_limits").
		Where(squirrel.GtOrEq{"limit_date": start}).
		Where(squirrel.LtOrEq{"limit_date": end}).
		OrderBy("limit_date ASC")

	if tour.IsAny() {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"tour_slug": domain.DefaultTourSlug})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{
			"tour_slug": []string{tour.Slug(), domain.DefaultTourSlug},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingLimit, 0)

	for rows.Next() {
		limit, err := scanLimit(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: FindRange - scan row: %v", ErrScanRow, err)
		}
		result = append(result, limit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindRange - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// FindAll получает все лимиты за период без фильтрации по туру
// (для административного списка)
func (r *Repository) FindAll(ctx context.Context, start, end time.Time) ([]*domain.BookingLimit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(limitColumns...).
		From("booking_limits").
		Where(squirrel.GtOrEq{"limit_date": start}).
		Where(squirrel.LtOrEq{"limit_date": end}).
		OrderBy("limit_date ASC", "tour_slug ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingLimit, 0)

	for rows.Next() {
		limit, err := scanLimit(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: FindAll - scan row: %v", ErrScanRow, err)
		}
		result = append(result, limit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindAll - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Upsert атомарно создает или обновляет лимит для пары (дата, тур)
//
// Уникальность пары обеспечивается индексом, конфликт разрешается через
// ON CONFLICT DO UPDATE. current_bookings заполняется нулем только при
// вставке и намеренно не трогается при обновлении — это справочное поле,
// фактическая загрузка считается по бронированиям на момент чтения
func (r *Repository) Upsert(ctx context.Context, date time.Time, tourSlug string, maxBookings int) (*domain.BookingLimit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_limits").
		Columns(
			"limit_date",
			"tour_slug",
			"max_bookings",
			"current_bookings",
		).
		Values(
			date,
			tourSlug,
			maxBookings,
			0,
		).
		Suffix(`ON CONFLICT (limit_date, tour_slug) DO UPDATE
			SET max_bookings = EXCLUDED.max_bookings, updated_at = NOW()`).
		Suffix("RETURNING " + strings.Join(limitColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	limit, err := scanLimit(row.Scan)

	if err == sql.ErrNoRows {
		// RETURNING не вернул строку - запись не применена
		return nil, fmt.Errorf("%w: Upsert - no row returned", ErrNotAcknowledged)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrNotAcknowledged, err)
	}

	return limit, nil
}

// scanLimit сканирует одну строку в доменную модель
func scanLimit(scan func(dest ...interface{}) error) (*domain.BookingLimit, error) {
	var limit domain.BookingLimit
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&limit.ID,
		&limit.Date,
		&limit.TourSlug,
		&limit.MaxBookings,
		&limit.CurrentBookings,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	limit.CreatedAt = createdAt.Time
	limit.UpdatedAt = updatedAt.Time

	return &limit, nil
}
