package get_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

const msgNotFound = "расписание салона не настроено"

type Handler struct {
	service    ScheduleService
	resourceID string
	logger     Logger
}

func NewHandler(service ScheduleService, resourceID string, logger Logger) *Handler {
	return &Handler{
		service:    service,
		resourceID: resourceID,
		logger:     logger,
	}
}

// Handle GET /api/v1/salon/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context(), h.resourceID)
	if err != nil {
		if errors.Is(err, schedule.ErrConfigNotFound) {
			h.logger.Warn("GET /salon/schedule - Schedule not found: resource=%s", h.resourceID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /salon/schedule - Failed to get schedule: resource=%s, error=%v", h.resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salon/schedule - Schedule retrieved successfully: resource=%s", h.resourceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
