package update_features

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/features"
	"github.com/m04kA/SMC-SalonBooking/internal/service/features/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "нужно передать booking_calendar_enabled"
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

// Handle PATCH /api/v1/admin/features
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateFeaturesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/features - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), h.resourceID, &req)
	if err != nil {
		if errors.Is(err, features.ErrInvalidInput) {
			h.logger.Warn("PATCH /admin/features - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("PATCH /admin/features - Failed to update features: resource=%s, error=%v", h.resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /admin/features - Features updated successfully: resource=%s, booking_calendar_enabled=%t",
		h.resourceID, result.BookingCalendarEnabled)
	handlers.RespondJSON(w, http.StatusOK, result)
}
