package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ResourceID           string
	ServiceIDs           []string
	ClientName           string
	ClientPhone          string
	StartTime            time.Time
	Notes                *string
	TotalDurationMinutes *int // Заменяет суммарную длительность услуг
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	// Notification запрос салону о записи. nil, если у салона нет контактного телефона
	Notification *domain.Notification
}
