package get_next_available

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// SlotLister слоты на одну дату
type SlotLister interface {
	Execute(ctx context.Context, req *getSlots.Request) (*getSlots.Response, error)
}

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	GetConfig(ctx context.Context, resourceID string) (*domain.ScheduleConfig, error)
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
