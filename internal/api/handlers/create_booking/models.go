package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceIDs    []string  `json:"serviceIds" validate:"required,min=1,dive,required"`
	ClientName    string    `json:"clientName" validate:"required"`
	ClientPhone   string    `json:"clientPhone" validate:"required"`
	StartTime     time.Time `json:"startTime" validate:"required"` // RFC 3339
	Notes         *string   `json:"notes,omitempty"`
	TotalDuration *int      `json:"totalDuration,omitempty" validate:"omitempty,gt=0"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	// WhatsappURL ссылка для клиента с готовым сообщением салону
	WhatsappURL string `json:"whatsappUrl,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(resourceID string) *createBooking.Request {
	return &createBooking.Request{
		ResourceID:           resourceID,
		ServiceIDs:           r.ServiceIDs,
		ClientName:           r.ClientName,
		ClientPhone:          r.ClientPhone,
		StartTime:            r.StartTime,
		Notes:                r.Notes,
		TotalDurationMinutes: r.TotalDuration,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	result := &CreateBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
	}
	if resp.Notification != nil {
		result.WhatsappURL = resp.Notification.Link()
	}
	return result
}
