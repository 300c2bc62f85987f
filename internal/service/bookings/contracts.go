package bookings

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ChangeRepository интерфейс журнала изменений
type ChangeRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) ([]*domain.BookingChange, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
