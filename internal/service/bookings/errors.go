package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrBookingDisabled возвращается, когда запись отключена переключателем
	ErrBookingDisabled = fmt.Errorf("booking is disabled: %w", domain.ErrForbidden)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrInvalidTimeRange возвращается, когда from_date позже to_date
	ErrInvalidTimeRange = fmt.Errorf("invalid time range: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
