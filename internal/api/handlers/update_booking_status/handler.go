package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	updateBookingStatus "github.com/m04kA/SMC-SalonBooking/internal/usecase/update_booking_status"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgBookingDisabled      = "онлайн-запись отключена"
	msgNotFound             = "бронирование не найдено"
	msgStaffNotFound        = "мастер не найден"
	msgScheduleNotFound     = "расписание салона не настроено"
	msgInvalidStatus        = "недопустимый статус"
	msgTransitionNotAllowed = "переход в этот статус запрещён"
	msgSlotNotAvailable     = "время записи уже занято, восстановить бронирование нельзя"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase    UpdateBookingStatusUseCase
	resourceID string
	logger     Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, resourceID string, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		resourceID: resourceID,
		logger:     logger,
	}
}

// Handle PATCH /api/v1/salon/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /salon/bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PATCH /salon/bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(h.resourceID, bookingID, actorID))
	if err != nil {
		switch {
		case errors.Is(err, updateBookingStatus.ErrBookingDisabled):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Booking disabled: resource=%s", h.resourceID)
			handlers.RespondForbidden(w, msgBookingDisabled)

		case errors.Is(err, updateBookingStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBookingStatus.ErrScheduleNotFound):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Schedule not found: resource=%s", h.resourceID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, updateBookingStatus.ErrStaffNotFound):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Staff not found: staff_id=%v", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, updateBookingStatus.ErrInvalidStatus):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Invalid status: %s", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, updateBookingStatus.ErrTransitionNotAllowed):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Transition not allowed: booking_id=%s, %v", bookingID, err)
			handlers.RespondBadRequest(w, msgTransitionNotAllowed)

		case errors.Is(err, updateBookingStatus.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Slot taken: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, updateBookingStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /salon/bookings/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /salon/bookings/{id}/status - Failed to update status: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /salon/bookings/{id}/status - Status updated successfully: booking_id=%s, status=%s, actor=%s",
		bookingID, result.Booking.Status, actorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
