package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewStartTime time.Time `json:"newStartTime" validate:"required"` // RFC 3339
	StaffID      *string   `json:"staffId,omitempty" validate:"omitempty,min=1"`
	Reason       string    `json:"reason"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	Booking     *models.BookingResponse `json:"booking"`
	WhatsappURL string                  `json:"whatsappUrl,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(resourceID, bookingID, actorID string) *rescheduleBooking.Request {
	return &rescheduleBooking.Request{
		ResourceID:   resourceID,
		BookingID:    bookingID,
		NewStartTime: r.NewStartTime,
		StaffID:      r.StaffID,
		Reason:       r.Reason,
		ActorID:      actorID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	result := &RescheduleResponse{
		Booking: models.FromDomainBooking(resp.Booking),
	}
	result.Booking.StaffName = resp.StaffName
	if resp.Notification != nil {
		result.WhatsappURL = resp.Notification.Link()
	}
	return result
}
