package get_booking_changes

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

// Handle GET /api/v1/salon/bookings/{bookingId}/changes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	result, err := h.service.GetChanges(r.Context(), h.resourceID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingDisabled):
			h.logger.Warn("GET /salon/bookings/{id}/changes - Booking disabled: resource=%s", h.resourceID)
			handlers.RespondForbidden(w, msgBookingDisabled)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /salon/bookings/{id}/changes - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /salon/bookings/{id}/changes - Failed to get changes: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salon/bookings/{id}/changes - Changes retrieved successfully: booking_id=%s, count=%d",
		bookingID, len(result.Changes))
	handlers.RespondJSON(w, http.StatusOK, result)
}
