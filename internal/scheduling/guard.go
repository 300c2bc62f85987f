package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingReader источник активных записей ресурса
type BookingReader interface {
	GetActiveOverlapping(ctx context.Context, resourceID string, start, end time.Time, excludeID *string) ([]*domain.Booking, error)
}

// ScheduleReader источник конфигурации расписания
type ScheduleReader interface {
	GetConfig(ctx context.Context, resourceID string) (*domain.ScheduleConfig, error)
}

// ConflictGuard проверка вместимости по текущему состоянию хранилища.
// Вызывающий отвечает за сериализацию: проверка и запись должны идти в одной
// транзакции под блокировкой ресурса
type ConflictGuard struct {
	bookings  BookingReader
	schedules ScheduleReader
}

// NewConflictGuard создает новый экземпляр ConflictGuard
func NewConflictGuard(bookings BookingReader, schedules ScheduleReader) *ConflictGuard {
	return &ConflictGuard{
		bookings:  bookings,
		schedules: schedules,
	}
}

// IsAvailable проверяет, что в окне [start, end) осталось свободное место.
// excludeBookingID исключает саму запись при переносе
func (g *ConflictGuard) IsAvailable(
	ctx context.Context,
	resourceID string,
	start, end time.Time,
	excludeBookingID *string,
) (bool, Evaluation, error) {
	cfg, err := g.schedules.GetConfig(ctx, resourceID)
	if err != nil {
		return false, Evaluation{}, fmt.Errorf("conflict guard: load config: %w", err)
	}

	bookings, err := g.bookings.GetActiveOverlapping(ctx, resourceID, start, end, excludeBookingID)
	if err != nil {
		return false, Evaluation{}, fmt.Errorf("conflict guard: load bookings: %w", err)
	}

	if excludeBookingID != nil {
		filtered := bookings[:0:0]
		for _, b := range bookings {
			if b.ID != *excludeBookingID {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	eval := Evaluate(TimeRange{Start: start, End: end}, cfg.TotalSeats, bookings)
	return eval.Available, eval, nil
}
