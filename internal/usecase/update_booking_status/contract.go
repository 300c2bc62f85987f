package update_booking_status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetActiveOverlapping(ctx context.Context, resourceID string, start, end time.Time, excludeID *string) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	LockResource(ctx context.Context, resourceID string) error
}

// ChangeRepository журнал изменений бронирований
type ChangeRepository interface {
	Create(ctx context.Context, change *domain.BookingChange) error
}

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	GetConfig(ctx context.Context, resourceID string) (*domain.ScheduleConfig, error)
}

// StaffDirectory справочник сотрудников
type StaffDirectory interface {
	GetStaff(ctx context.Context, staffID string) (*domain.Staff, error)
}

// FeatureGate переключатель записи
type FeatureGate interface {
	IsBookingEnabled(ctx context.Context, resourceID string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotificationComposer формирует текст уведомления
type NotificationComposer interface {
	Compose(cfg *domain.ScheduleConfig, booking *domain.Booking, event domain.NotificationEvent, previousStart *time.Time) (*domain.Notification, error)
}

// NotificationRelay отправляет уведомление после фиксации
type NotificationRelay interface {
	Send(ctx context.Context, n *domain.Notification)
}

// Metrics счётчики бронирований
type Metrics interface {
	BookingStatusChanged(status string)
	BookingConflict(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
