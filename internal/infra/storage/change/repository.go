package change

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository журнал изменений бронирований (только добавление)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал. changed_at проставляет база
func (r *Repository) Create(ctx context.Context, change *domain.BookingChange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_changes").
		Columns(
			"id",
			"booking_id",
			"resource_id",
			"actor_id",
			"old_start_time",
			"new_start_time",
			"old_staff_id",
			"new_staff_id",
			"old_status",
			"new_status",
			"reason",
		).
		Values(
			change.ID,
			change.BookingID,
			change.ResourceID,
			change.ActorID,
			utcOrNil(change.OldStartTime),
			utcOrNil(change.NewStartTime),
			change.OldStaffID,
			change.NewStaffID,
			change.OldStatus,
			change.NewStatus,
			change.Reason,
		).
		Suffix("RETURNING changed_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&change.ChangedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByBookingID возвращает историю бронирования, новые записи первыми
func (r *Repository) GetByBookingID(ctx context.Context, bookingID string) ([]*domain.BookingChange, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"resource_id",
		"actor_id",
		"old_start_time",
		"new_start_time",
		"old_staff_id",
		"new_staff_id",
		"old_status",
		"new_status",
		"reason",
		"changed_at",
	).
		From("booking_changes").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("changed_at DESC", "seq DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	changes := make([]*domain.BookingChange, 0)
	for rows.Next() {
		var c domain.BookingChange
		var oldStart, newStart sql.NullTime

		err := rows.Scan(
			&c.ID,
			&c.BookingID,
			&c.ResourceID,
			&c.ActorID,
			&oldStart,
			&newStart,
			&c.OldStaffID,
			&c.NewStaffID,
			&c.OldStatus,
			&c.NewStatus,
			&c.Reason,
			&c.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingID - scan row: %v", ErrScanRow, err)
		}

		if oldStart.Valid {
			c.OldStartTime = &oldStart.Time
		}
		if newStart.Valid {
			c.NewStartTime = &newStart.Time
		}

		changes = append(changes, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - rows error: %v", ErrScanRow, err)
	}

	return changes, nil
}

func utcOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}
