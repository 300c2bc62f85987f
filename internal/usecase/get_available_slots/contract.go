package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveOverlapping неотменённые записи ресурса, пересекающие [start, end)
	GetActiveOverlapping(ctx context.Context, resourceID string, start, end time.Time, excludeID *string) ([]*domain.Booking, error)
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
