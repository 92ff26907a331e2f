package meeting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/pkg/dbmetrics"
	"github.com/omerbhr129/meety-sub000/pkg/psqlbuilder"
)

const table = "meetings"

var columns = []string{
	"id",
	"host_id",
	"title",
	"description",
	"duration_minutes",
	"availability",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со встречами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую встречу
func (r *Repository) Create(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"host_id",
			"title",
			"description",
			"duration_minutes",
			"availability",
			"status",
		).
		Values(
			meeting.HostID,
			meeting.Title,
			meeting.Description,
			meeting.DurationMinutes,
			meeting.Availability,
			meeting.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&meeting.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	meeting.CreatedAt = createdAt.Time
	meeting.UpdatedAt = updatedAt.Time

	return meeting, nil
}

// GetByID получает встречу по ID (включая удаленные)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	meeting, err := scanMeeting(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMeetingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan meeting: %v", ErrScanRow, err)
	}

	return meeting, nil
}

// GetByHost получает встречи хоста, новые первыми
func (r *Repository) GetByHost(ctx context.Context, filter domain.MeetingsFilter) ([]*domain.Meeting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"host_id": filter.HostID}).
		OrderBy("created_at DESC")

	if !filter.IncludeDeleted {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.MeetingStatusDeleted})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHost - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHost - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	meetings := make([]*domain.Meeting, 0)
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByHost - scan row: %v", ErrScanRow, err)
		}
		meetings = append(meetings, meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByHost - rows error: %v", ErrScanRow, err)
	}

	return meetings, nil
}

// UpdateAvailability заменяет длительность и недельный шаблон доступности активной встречи
func (r *Repository) UpdateAvailability(ctx context.Context, id int64, durationMinutes int, availability domain.WeeklyAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("duration_minutes", durationMinutes).
		Set("availability", availability).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.MeetingStatusDeleted}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateAvailability - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateAvailability", query, args)
}

// SoftDelete помечает встречу удаленной. Забронированные слоты остаются в истории.
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.MeetingStatusDeleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.MeetingStatusDeleted}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "SoftDelete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrMeetingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMeeting(row rowScanner) (*domain.Meeting, error) {
	var meeting domain.Meeting
	var description sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&meeting.ID,
		&meeting.HostID,
		&meeting.Title,
		&description,
		&meeting.DurationMinutes,
		&meeting.Availability,
		&meeting.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		meeting.Description = &description.String
	}
	meeting.CreatedAt = createdAt.Time
	meeting.UpdatedAt = updatedAt.Time

	return &meeting, nil
}
