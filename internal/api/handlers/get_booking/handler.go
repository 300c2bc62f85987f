package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

const (
	msgBookingDisabled = "онлайн-запись отключена"
	msgNotFound        = "бронирование не найдено"
)

type Handler struct {
	service    BookingService
	resourceID string
	logger     Logger
}

func NewHandler(service BookingService, resourceID string, logger Logger) *Handler {
	return &Handler{
		service:    service,
		resourceID: resourceID,
		logger:     logger,
	}
}

// Handle GET /api/v1/salon/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	result, err := h.service.GetByID(r.Context(), h.resourceID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingDisabled):
			h.logger.Warn("GET /salon/bookings/{id} - Booking disabled: resource=%s", h.resourceID)
			handlers.RespondForbidden(w, msgBookingDisabled)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /salon/bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /salon/bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salon/bookings/{id} - Booking retrieved successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
