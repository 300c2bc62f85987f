package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// WorkingHours расписание на один день недели
type WorkingHours struct {
	Day    string // Название дня недели на английском ("monday")
	Open   types.TimeString
	Close  types.TimeString
	Closed bool
}

// Weekday возвращает день недели записи
func (w WorkingHours) Weekday() (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(strings.TrimSpace(w.Day), d.String()) {
			return d, true
		}
	}
	return 0, false
}

// ScheduleConfig конфигурация расписания ресурса (салона)
type ScheduleConfig struct {
	ResourceID      string
	ResourceName    string
	ContactPhone    string // Номер салона для ссылки на мессенджер при записи
	SlotStepMinutes int
	TotalSeats      int
	Timezone        string
	WorkingHours    []WorkingHours
	UpdatedAt       time.Time
}

// Location возвращает часовой пояс ресурса
func (c *ScheduleConfig) Location() (*time.Location, error) {
	tz := c.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// SlotStep шаг сетки слотов
func (c *ScheduleConfig) SlotStep() time.Duration {
	return time.Duration(c.SlotStepMinutes) * time.Minute
}

// NewDefaultScheduleConfig конфигурация по умолчанию для нового ресурса
func NewDefaultScheduleConfig(resourceID string) *ScheduleConfig {
	return &ScheduleConfig{
		ResourceID:      resourceID,
		SlotStepMinutes: DefaultSlotStepMinutes,
		TotalSeats:      DefaultTotalSeats,
		Timezone:        DefaultTimezone,
	}
}
