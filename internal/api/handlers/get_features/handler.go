package get_features

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

type Handler struct {
	service    FeatureService
	resourceID string
	logger     Logger
}

func NewHandler(service FeatureService, resourceID string, logger Logger) *Handler {
	return &Handler{
		service:    service,
		resourceID: resourceID,
		logger:     logger,
	}
}

// Handle GET /api/v1/features
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context(), h.resourceID)
	if err != nil {
		h.logger.Error("GET /features - Failed to get features: resource=%s, error=%v", h.resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /features - Features retrieved successfully: resource=%s, booking_calendar_enabled=%t",
		h.resourceID, result.BookingCalendarEnabled)
	handlers.RespondJSON(w, http.StatusOK, result)
}
