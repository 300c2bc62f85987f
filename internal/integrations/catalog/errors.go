package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrServiceNotFound услуга отсутствует в каталоге
	ErrServiceNotFound = fmt.Errorf("catalog: service not found: %w", domain.ErrNotFound)

	// ErrStaffNotFound сотрудник отсутствует в справочнике
	ErrStaffNotFound = fmt.Errorf("catalog: staff not found: %w", domain.ErrNotFound)

	// ErrInternal внутренняя ошибка клиента
	ErrInternal = errors.New("catalog client: internal error")

	// ErrInvalidResponse некорректный ответ каталога
	ErrInvalidResponse = errors.New("catalog client: invalid response")
)
