package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrBookingDisabled запись отключена переключателем
	ErrBookingDisabled = fmt.Errorf("booking is disabled: %w", domain.ErrForbidden)

	// ErrScheduleNotFound у ресурса нет конфигурации расписания
	ErrScheduleNotFound = fmt.Errorf("schedule config not found: %w", domain.ErrNotFound)

	// ErrServiceNotFound ни одна из услуг не найдена или не активна
	ErrServiceNotFound = fmt.Errorf("no active service resolved: %w", domain.ErrNotFound)

	// ErrSlotNotAvailable в выбранном окне не осталось мест
	ErrSlotNotAvailable = fmt.Errorf("selected time slot is not available: %w", domain.ErrConflict)

	// ErrStartInPast время начала уже прошло
	ErrStartInPast = fmt.Errorf("start time is in the past: %w", domain.ErrValidation)

	// ErrInvalidPhone телефон клиента не распознан
	ErrInvalidPhone = fmt.Errorf("invalid client phone: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
