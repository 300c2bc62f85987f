package domain

import (
	"errors"
	"fmt"
)

// Базовые виды ошибок. Ошибки пакетов оборачивают один из них через %w,
// обработчики определяют HTTP статус через errors.Is
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
)

var (
	// ErrInvalidStatus неизвестный статус бронирования
	ErrInvalidStatus = fmt.Errorf("invalid booking status: %w", ErrValidation)

	// ErrTransitionNotAllowed переход между статусами запрещён таблицей переходов
	ErrTransitionNotAllowed = fmt.Errorf("status transition not allowed: %w", ErrValidation)

	// ErrInvalidTimezone часовой пояс ресурса не распознан
	ErrInvalidTimezone = fmt.Errorf("invalid timezone: %w", ErrValidation)
)
