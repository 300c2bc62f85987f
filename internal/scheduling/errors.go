package scheduling

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrInvalidWorkingHours время в расписании не разбирается
	ErrInvalidWorkingHours = fmt.Errorf("scheduling: invalid working hours: %w", domain.ErrValidation)

	// ErrInvalidDuration длительность записи должна быть положительной
	ErrInvalidDuration = fmt.Errorf("scheduling: duration must be positive: %w", domain.ErrValidation)

	// ErrInvalidStep шаг сетки слотов должен быть положительным
	ErrInvalidStep = fmt.Errorf("scheduling: slot step must be positive: %w", domain.ErrValidation)
)
