package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/pkg/dbmetrics"
	"github.com/omerbhr129/meety-sub000/pkg/pgerrors"
	"github.com/omerbhr129/meety-sub000/pkg/psqlbuilder"
)

const table = "booked_slots"

// insertConflictSuffix условная вставка: партиционный уникальный индекс
// (meeting_id, slot_date, slot_time) WHERE status <> 'cancelled' не даст занять слот дважды
const insertConflictSuffix = "ON CONFLICT (meeting_id, slot_date, slot_time) WHERE status <> 'cancelled' DO NOTHING " +
	"RETURNING id, created_at, updated_at"

var columns = []string{
	"id",
	"meeting_id",
	"participant_id",
	"slot_date",
	"slot_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с забронированными слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create атомарно занимает слот.
// Если слот уже занят активным бронированием, вставка не происходит и возвращается ErrSlotNotAvailable.
// Внутри serializable транзакции (через context) конфликт с конкурентной транзакцией
// возвращается как ErrConcurrentUpdate.
func (r *Repository) Create(ctx context.Context, booking *domain.BookedSlot) (*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"meeting_id",
			"participant_id",
			"slot_date",
			"slot_time",
			"status",
		).
		Values(
			booking.MeetingID,
			booking.ParticipantID,
			booking.Date.Format(domain.DateFormat), // DATE передается текстом, без влияния часового пояса сессии
			booking.Time,
			booking.Status,
		).
		Suffix(insertConflictSuffix).
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

	switch {
	case errors.Is(err, sql.ErrNoRows):
		// ON CONFLICT DO NOTHING: строка не вставлена
		return nil, fmt.Errorf("%w: meeting=%d date=%s time=%s", ErrSlotNotAvailable,
			booking.MeetingID, booking.Date.Format(domain.DateFormat), booking.Time)
	case pgerrors.IsUniqueViolation(err):
		return nil, fmt.Errorf("%w: Create - unique violation: %v", ErrSlotNotAvailable, err)
	case pgerrors.IsSerializationFailure(err):
		return nil, fmt.Errorf("%w: Create - %v", ErrConcurrentUpdate, err)
	case err != nil:
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByMeetingWithFilter получает бронирования встречи с фильтрацией по периоду и статусу.
// Без Status и IncludeCancelled возвращаются только активные бронирования.
// Внутри транзакции для одной даты строки блокируются (FOR UPDATE).
func (r *Repository) GetByMeetingWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"meeting_id": filter.MeetingID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": filter.EndDate.Format(domain.DateFormat)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	selectBuilder = selectBuilder.OrderBy("slot_date ASC", "slot_time ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.IsSingleDate() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMeetingWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: GetByMeetingWithFilter - %v", ErrConcurrentUpdate, err)
		}
		return nil, fmt.Errorf("%w: GetByMeetingWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatusIf меняет статус только если текущий статус равен from (compare-and-set).
// Возвращает false, если статус успел измениться или бронирование удалено.
func (r *Repository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIf - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIf - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Delete физически удаляет бронирование, освобождая (дата, время)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.BookedSlot, error) {
	var booking domain.BookedSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.MeetingID,
		&booking.ParticipantID,
		&booking.Date,
		&booking.Time,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = domain.DateOnly(booking.Date)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.BookedSlot, error) {
	bookings := make([]*domain.BookedSlot, 0)

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
