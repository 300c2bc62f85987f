package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации расписания и рабочих часов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetConfig получает конфигурацию ресурса вместе с рабочими часами
func (r *Repository) GetConfig(ctx context.Context, resourceID string) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"resource_id",
		"resource_name",
		"contact_phone",
		"slot_step_minutes",
		"total_seats",
		"timezone",
		"updated_at",
	).
		From("schedule_configs").
		Where(squirrel.Eq{"resource_id": resourceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ScheduleConfig
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ResourceID,
		&cfg.ResourceName,
		&cfg.ContactPhone,
		&cfg.SlotStepMinutes,
		&cfg.TotalSeats,
		&cfg.Timezone,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - scan config: %v", ErrScanRow, err)
	}
	cfg.UpdatedAt = updatedAt.Time

	hours, err := r.getWorkingHours(ctx, executor, resourceID)
	if err != nil {
		return nil, err
	}
	cfg.WorkingHours = hours

	return &cfg, nil
}

// Upsert создает или заменяет конфигурацию ресурса.
// Рабочие часы заменяются целиком, поэтому вызывать нужно внутри транзакции
func (r *Repository) Upsert(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_configs").
		Columns(
			"resource_id",
			"resource_name",
			"contact_phone",
			"slot_step_minutes",
			"total_seats",
			"timezone",
		).
		Values(
			cfg.ResourceID,
			cfg.ResourceName,
			cfg.ContactPhone,
			cfg.SlotStepMinutes,
			cfg.TotalSeats,
			cfg.Timezone,
		).
		Suffix(`ON CONFLICT (resource_id) DO UPDATE SET
			resource_name = EXCLUDED.resource_name,
			contact_phone = EXCLUDED.contact_phone,
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			total_seats = EXCLUDED.total_seats,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cfg.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"resource_id": cfg.ResourceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - delete working hours: %v", ErrExecQuery, err)
	}

	if len(cfg.WorkingHours) == 0 {
		return cfg, nil
	}

	insert := psqlbuilder.Insert("working_hours").
		Columns("resource_id", "day", "open_time", "close_time", "closed")
	for _, h := range cfg.WorkingHours {
		insert = insert.Values(cfg.ResourceID, h.Day, h.Open, h.Close, h.Closed)
	}

	insertQuery, insertArgs, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build working hours insert: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - insert working hours: %v", ErrExecQuery, err)
	}

	return cfg, nil
}

func (r *Repository) getWorkingHours(ctx context.Context, executor dbmetrics.DBExecutor, resourceID string) ([]domain.WorkingHours, error) {
	query, args, err := psqlbuilder.Select("day", "open_time", "close_time", "closed").
		From("working_hours").
		Where(squirrel.Eq{"resource_id": resourceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]domain.WorkingHours, 0, 7)
	for rows.Next() {
		var h domain.WorkingHours
		if err := rows.Scan(&h.Day, &h.Open, &h.Close, &h.Closed); err != nil {
			return nil, fmt.Errorf("%w: getWorkingHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}
