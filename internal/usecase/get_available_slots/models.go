package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ResourceID string
	ServiceID  string
	// Date календарная дата. Год, месяц и день трактуются в часовом поясе ресурса
	Date time.Time
	// TotalDurationMinutes длительность нескольких услуг сразу. Если задана, заменяет длительность услуги
	TotalDurationMinutes *int
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time
	ServiceID string
	Slots     []domain.Slot
}
