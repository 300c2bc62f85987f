package update_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры расписания"
	msgSeatsBelowBookings = "число мест меньше числа уже пересекающихся записей"
)

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

// Handle PUT /api/v1/salon/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salon/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), h.resourceID, &req)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("PUT /salon/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		if errors.Is(err, schedule.ErrSeatsBelowBookings) {
			h.logger.Warn("PUT /salon/schedule - Seats reduction rejected: %v", err)
			handlers.RespondConflict(w, msgSeatsBelowBookings)
			return
		}
		h.logger.Error("PUT /salon/schedule - Failed to update schedule: resource=%s, error=%v", h.resourceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /salon/schedule - Schedule updated successfully: resource=%s, seats=%d, step=%d",
		h.resourceID, result.TotalSeats, result.SlotStepMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
