package update_booking_status

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Request модель запроса на смену статуса
type Request struct {
	ResourceID string
	BookingID  string
	Status     string
	StaffID    *string // nil - мастер не меняется
	ActorID    string
}

// Response модель ответа
type Response struct {
	Booking      *domain.Booking
	StaffName    *string // Имя назначенного мастера, nil если мастер не назначен или не найден
	Notification *domain.Notification // Только для confirmed и cancelled
}
