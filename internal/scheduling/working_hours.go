package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// DayWindow рабочее окно ресурса на конкретную дату
type DayWindow struct {
	Open   time.Time
	Close  time.Time
	Closed bool
}

// ResolveWorkingHours возвращает рабочее окно на календарную дату date в часовом поясе loc.
// Год, месяц и день берутся из date без перевода в loc.
// День без записи в расписании работает по окну DefaultOpenTime-DefaultCloseTime
func ResolveWorkingHours(date time.Time, hours []domain.WorkingHours, loc *time.Location) (DayWindow, error) {
	y, m, d := date.Date()
	weekday := time.Date(y, m, d, 0, 0, 0, 0, loc).Weekday()

	open, closeAt := domain.DefaultOpenTime, domain.DefaultCloseTime
	for _, entry := range hours {
		day, ok := entry.Weekday()
		if !ok || day != weekday {
			continue
		}
		if entry.Closed {
			return DayWindow{Closed: true}, nil
		}
		open, closeAt = entry.Open, entry.Close
		break
	}

	openAt, err := open.On(date, loc)
	if err != nil {
		return DayWindow{}, fmt.Errorf("%w: %s open: %v", ErrInvalidWorkingHours, weekday, err)
	}
	closeTime, err := closeAt.On(date, loc)
	if err != nil {
		return DayWindow{}, fmt.Errorf("%w: %s close: %v", ErrInvalidWorkingHours, weekday, err)
	}

	// Окно без положительной длины считаем выходным
	if !closeTime.After(openAt) {
		return DayWindow{Closed: true}, nil
	}

	return DayWindow{Open: openAt, Close: closeTime}, nil
}
