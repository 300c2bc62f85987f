package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrConfigNotFound возвращается, когда конфигурация салона не найдена
	ErrConfigNotFound = fmt.Errorf("schedule config not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrSeatsBelowBookings новое число мест меньше числа уже пересекающихся активных записей
	ErrSeatsBelowBookings = fmt.Errorf("total seats below overlapping active bookings: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
