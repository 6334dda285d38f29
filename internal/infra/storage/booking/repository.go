package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/CAJINC/buy-locals-booking/internal/domain"
	"github.com/CAJINC/buy-locals-booking/pkg/psqlbuilder"
	"github.com/CAJINC/buy-locals-booking/pkg/txmanager"
)

// bookingColumns общий список колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"user_id",
	"business_id",
	"service_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"total_amount",
	"customer_name",
	"customer_phone",
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

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её -
// на write-пути создание всегда идёт в одной транзакции с проверкой
// конфликтов (GetConflicting + FOR UPDATE).
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"business_id",
			"service_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"total_amount",
			"customer_name",
			"customer_phone",
			"customer_email",
			"notes",
		).
		Values(
			booking.UserID,
			booking.BusinessID,
			booking.ServiceID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.TotalAmount,
			booking.Customer.Name,
			booking.Customer.Phone,
			booking.Customer.Email,
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

// GetByID получает бронирование по ID без блокировки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID с эксклюзивной блокировкой строки.
// Обязателен к использованию вместо GetByID, если вызывающий собирается
// изменять строку: сериализует конкурентные попытки отмены/обновления
// одного бронирования. Требует активной транзакции в контексте.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	if !txmanager.IsInTransaction(ctx) {
		return nil, fmt.Errorf("%w: GetByIDForUpdate", ErrNoTransaction)
	}
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetConflicting получает бронирования бизнеса, пересекающиеся с предложенным
// интервалом [startTime, startTime+durationMinutes) на указанную дату.
// Отменённые и no-show бронирования никогда не блокируют слот.
//
// Предикат пересечения полуоткрытых интервалов: a < c+d AND c < b.
// Ровно граничащие интервалы пересечением не считаются.
//
// Внутри транзакции добавляется FOR UPDATE: конкурентное создание
// пересекающегося бронирования на этот бизнес блокируется до коммита или
// отката первой транзакции, после чего предикат перепроверяется заново.
func (r *Repository) GetConflicting(
	ctx context.Context,
	businessID int64,
	date time.Time,
	startTime string,
	durationMinutes int,
	excludeBookingID *int64,
) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	inactiveStatuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactiveStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.NotEq{"status": inactiveStatuses}).
		Where(squirrel.Expr(
			"start_time < ?::time + ? * interval '1 minute' AND ?::time < start_time + duration_minutes * interval '1 minute'",
			startTime, durationMinutes, startTime,
		)).
		OrderBy("start_time ASC")

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeBookingID})
	}

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConflicting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConflicting - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetForDate получает активные бронирования бизнеса на дату без блокировки.
// Используется read-путём генерации доступных слотов: это снимок на момент
// чтения, корректность под конкурентной записью обеспечивает write-путь.
func (r *Repository) GetForDate(ctx context.Context, businessID int64, date time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	inactiveStatuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactiveStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.NotEq{"status": inactiveStatuses}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByUser получает страницу истории бронирований пользователя и общее
// количество. Счётчик и страница строятся из одного и того же фильтра,
// чтобы total всегда соответствовал выборке.
func (r *Repository) ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Eq{"user_id": filter.UserID}}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}
	if filter.BusinessID != nil {
		where = append(where, squirrel.Eq{"business_id": *filter.BusinessID})
	}

	// Общее количество по тому же фильтру
	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - scan count: %v", ErrScanRow, err)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		OrderBy("booking_date DESC, start_time DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// GetByBusinessWithFilter получает бронирования бизнеса за период с
// опциональной фильтрацией по статусу. Для операторов бизнеса.
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatuses := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatuses})
	}

	// Для выборки на один день сортируем по времени начала
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования.
// Используется внешним workflow эскалации (confirmed/completed/no_show);
// движок сам валидирует только переходы отмены.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel переводит бронирование в статус cancelled с указанием причины.
// Физическое удаление не предусмотрено: история нужна для аудита и возвратов.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

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

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в доменную модель.
// Явный типизированный маппинг: по одной чистой функции на форму строки.
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.BusinessID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.TotalAmount,
		&booking.Customer.Name,
		&booking.Customer.Phone,
		&booking.Customer.Email,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
