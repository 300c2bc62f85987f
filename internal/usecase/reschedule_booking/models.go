package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на перенос
type Request struct {
	ResourceID   string
	BookingID    string
	NewStartTime time.Time
	StaffID      *string // nil - мастер не меняется
	Reason       string
	ActorID      string
}

// Response модель ответа
type Response struct {
	Booking      *domain.Booking
	StaffName    *string // Имя назначенного мастера, nil если мастер не назначен или не найден
	Notification *domain.Notification
}
