package get_next_available

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Request модель запроса ближайших свободных слотов
type Request struct {
	ResourceID string
	ServiceID  string
	Limit      int // <= 0 означает значение по умолчанию
}

// Response модель ответа
type Response struct {
	ServiceID string
	Slots     []domain.Slot
}
