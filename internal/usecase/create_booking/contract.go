package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveOverlapping(ctx context.Context, resourceID string, start, end time.Time, excludeID *string) ([]*domain.Booking, error)
	// LockResource сериализует изменения ресурса до конца текущей транзакции
	LockResource(ctx context.Context, resourceID string) error
}

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	GetConfig(ctx context.Context, resourceID string) (*domain.ScheduleConfig, error)
}

// ServiceCatalog интерфейс каталога услуг
type ServiceCatalog interface {
	GetService(ctx context.Context, serviceID string) (*domain.Service, error)
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
	BookingCreated()
	BookingConflict(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
