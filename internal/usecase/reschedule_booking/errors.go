package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrBookingDisabled запись отключена переключателем
	ErrBookingDisabled = fmt.Errorf("booking is disabled: %w", domain.ErrForbidden)

	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking not found: %w", domain.ErrNotFound)

	// ErrStaffNotFound сотрудник не найден
	ErrStaffNotFound = fmt.Errorf("staff not found: %w", domain.ErrNotFound)

	// ErrStartInPast новое время уже прошло
	ErrStartInPast = fmt.Errorf("new start time is in the past: %w", domain.ErrValidation)

	// ErrTransitionNotAllowed перенос переводит запись в confirmed, а таблица переходов это запрещает
	ErrTransitionNotAllowed = fmt.Errorf("booking cannot be rescheduled from its status: %w", domain.ErrValidation)

	// ErrSlotNotAvailable в новом окне нет мест
	ErrSlotNotAvailable = fmt.Errorf("selected time slot is not available: %w", domain.ErrConflict)

	// ErrScheduleNotFound у ресурса нет конфигурации расписания
	ErrScheduleNotFound = fmt.Errorf("schedule config not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
