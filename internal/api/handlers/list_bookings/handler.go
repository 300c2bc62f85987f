package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

const (
	msgBookingDisabled  = "онлайн-запись отключена"
	msgInvalidFilter    = "некорректный фильтр: даты в формате YYYY-MM-DD, статус из списка допустимых"
	msgInvalidTimeRange = "from_date не может быть позже to_date"
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

// Handle GET /api/v1/salon/bookings
// Query params: from_date, to_date (YYYY-MM-DD, включительно), status (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListBookingsRequest{
		ResourceID: h.resourceID,
		FromDate:   optional(query.Get("from_date")),
		ToDate:     optional(query.Get("to_date")),
		Status:     optional(query.Get("status")),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingDisabled):
			h.logger.Warn("GET /salon/bookings - Booking disabled: resource=%s", h.resourceID)
			handlers.RespondForbidden(w, msgBookingDisabled)

		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /salon/bookings - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /salon/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /salon/bookings - Failed to list bookings: resource=%s, error=%v", h.resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salon/bookings - Bookings retrieved successfully: resource=%s, count=%d", h.resourceID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
