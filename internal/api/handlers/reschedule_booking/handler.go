package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgBookingDisabled      = "онлайн-запись отключена"
	msgNotFound             = "бронирование не найдено"
	msgStaffNotFound        = "мастер не найден"
	msgScheduleNotFound     = "расписание салона не настроено"
	msgStartInPast          = "новое время записи уже прошло"
	msgTransitionNotAllowed = "бронирование в этом статусе нельзя перенести"
	msgSlotNotAvailable     = "выбранное время недоступно"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase    RescheduleBookingUseCase
	resourceID string
	logger     Logger
}

func NewHandler(useCase RescheduleBookingUseCase, resourceID string, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		resourceID: resourceID,
		logger:     logger,
	}
}

// Handle PATCH /api/v1/salon/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(h.resourceID, bookingID, actorID))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingDisabled):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Booking disabled: resource=%s", h.resourceID)
			handlers.RespondForbidden(w, msgBookingDisabled)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrScheduleNotFound):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Schedule not found: resource=%s", h.resourceID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, rescheduleBooking.ErrStaffNotFound):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Staff not found: staff_id=%v", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, rescheduleBooking.ErrStartInPast):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - New start in past: %s", req.NewStartTime)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, rescheduleBooking.ErrTransitionNotAllowed):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Transition not allowed: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgTransitionNotAllowed)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Slot not available: booking_id=%s, start=%s",
				bookingID, req.NewStartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /salon/bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /salon/bookings/{id}/reschedule - Failed to reschedule: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /salon/bookings/{id}/reschedule - Booking rescheduled successfully: booking_id=%s, start=%s, actor=%s",
		bookingID, result.Booking.StartTime, actorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
