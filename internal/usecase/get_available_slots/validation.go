package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ResourceID) == "" {
		return fmt.Errorf("%w: resourceID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if d := req.TotalDurationMinutes; d != nil && (*d <= 0 || *d > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: totalDuration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	return nil
}
