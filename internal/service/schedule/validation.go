package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

// validateUpdate проверяет переданные поля запроса
func validateUpdate(req *models.UpdateScheduleRequest) error {
	if req.SlotStepMinutes != nil {
		step := *req.SlotStepMinutes
		if step < domain.MinSlotStepMinutes || step > domain.MaxSlotStepMinutes {
			return fmt.Errorf("%w: slotStepMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
		}
	}

	if req.TotalSeats != nil {
		seats := *req.TotalSeats
		if seats < domain.MinTotalSeats || seats > domain.MaxTotalSeats {
			return fmt.Errorf("%w: totalSeats must be between %d and %d",
				ErrInvalidInput, domain.MinTotalSeats, domain.MaxTotalSeats)
		}
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(strings.TrimSpace(*req.Timezone)); err != nil || strings.TrimSpace(*req.Timezone) == "" {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, *req.Timezone)
		}
	}

	if req.ResourceName != nil && strings.TrimSpace(*req.ResourceName) == "" {
		return fmt.Errorf("%w: resourceName must not be empty", ErrInvalidInput)
	}

	return nil
}

// toWorkingHours проверяет и конвертирует недельное расписание.
// Каждый день недели может встречаться только один раз
func toWorkingHours(days []models.WorkingHoursRequest) ([]domain.WorkingHours, error) {
	result := make([]domain.WorkingHours, 0, len(days))
	seen := make(map[time.Weekday]bool, len(days))

	for _, day := range days {
		wh, err := day.ToDomainWorkingHours()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, day.Day, err)
		}

		weekday, ok := wh.Weekday()
		if !ok {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidInput, day.Day)
		}
		if seen[weekday] {
			return nil, fmt.Errorf("%w: day %q is listed twice", ErrInvalidInput, day.Day)
		}
		seen[weekday] = true

		wh.Day = strings.ToLower(weekday.String())
		result = append(result, wh)
	}

	return result, nil
}
