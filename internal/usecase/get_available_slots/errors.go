package get_available_slots

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

	// ErrServiceNotFound услуга отсутствует или неактивна
	ErrServiceNotFound = fmt.Errorf("service not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
