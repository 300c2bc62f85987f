package update_booking_status

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

	// ErrInvalidStatus неизвестный статус
	ErrInvalidStatus = fmt.Errorf("invalid booking status: %w", domain.ErrValidation)

	// ErrTransitionNotAllowed переход запрещён таблицей переходов
	ErrTransitionNotAllowed = fmt.Errorf("status transition not allowed: %w", domain.ErrValidation)

	// ErrSlotNotAvailable восстановление отменённой записи: в её окне нет мест
	ErrSlotNotAvailable = fmt.Errorf("time slot is no longer available: %w", domain.ErrConflict)

	// ErrScheduleNotFound у ресурса нет конфигурации расписания
	ErrScheduleNotFound = fmt.Errorf("schedule config not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
