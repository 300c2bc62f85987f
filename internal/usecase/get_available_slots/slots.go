package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
)

// buildSlots строит доступные слоты рабочего окна.
// Уже начавшиеся окна отбрасываются, остальные проверяются по занятости
func buildSlots(
	window scheduling.DayWindow,
	duration time.Duration,
	cfg *domain.ScheduleConfig,
	loc *time.Location,
	bookings []*domain.Booking,
	now time.Time,
) ([]domain.Slot, error) {
	candidates, err := scheduling.GenerateSlots(window, duration, cfg.SlotStep())
	if err != nil {
		return nil, err
	}
	candidates = scheduling.DropStarted(candidates, now)

	slots := make([]domain.Slot, 0, len(candidates))
	for _, c := range candidates {
		eval := scheduling.Evaluate(c, cfg.TotalSeats, bookings)
		if !eval.Available {
			continue
		}
		slots = append(slots, domain.Slot{
			StartTime:      c.Start,
			EndTime:        c.End,
			DisplayTime:    c.Start.In(loc).Format(domain.TimeFormat),
			RemainingSeats: eval.RemainingSeats,
			TotalSeats:     cfg.TotalSeats,
		})
	}

	return slots, nil
}
