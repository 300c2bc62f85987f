package update_booking_status

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	updateBookingStatus "github.com/m04kA/SMC-SalonBooking/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status  string  `json:"status" validate:"required"`
	StaffID *string `json:"staffId,omitempty" validate:"omitempty,min=1"`
}

// BookingUpdateResponse HTTP response model
type BookingUpdateResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	// WhatsappURL ссылка с готовым сообщением клиенту (только confirmed и cancelled)
	WhatsappURL string `json:"whatsappUrl,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(resourceID, bookingID, actorID string) *updateBookingStatus.Request {
	return &updateBookingStatus.Request{
		ResourceID: resourceID,
		BookingID:  bookingID,
		Status:     r.Status,
		StaffID:    r.StaffID,
		ActorID:    actorID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBookingStatus.Response) *BookingUpdateResponse {
	result := &BookingUpdateResponse{
		Booking: models.FromDomainBooking(resp.Booking),
	}
	result.Booking.StaffName = resp.StaffName
	if resp.Notification != nil {
		result.WhatsappURL = resp.Notification.Link()
	}
	return result
}
