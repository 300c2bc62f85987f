package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingDisabled    = "онлайн-запись отключена"
	msgScheduleNotFound   = "расписание салона не настроено"
	msgServiceNotFound    = "ни одна из выбранных услуг не найдена"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgStartInPast        = "время записи уже прошло"
	msgInvalidPhone       = "некорректный номер телефона"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase    CreateBookingUseCase
	resourceID string
	logger     Logger
}

func NewHandler(useCase CreateBookingUseCase, resourceID string, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		resourceID: resourceID,
		logger:     logger,
	}
}

// Handle POST /api/v1/public/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /public/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(h.resourceID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBookingDisabled):
			h.logger.Warn("POST /public/bookings - Booking disabled: resource=%s", h.resourceID)
			handlers.RespondForbidden(w, msgBookingDisabled)

		case errors.Is(err, createBooking.ErrScheduleNotFound):
			h.logger.Warn("POST /public/bookings - Schedule not found: resource=%s", h.resourceID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /public/bookings - Services not found: service_ids=%v", req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /public/bookings - Slot not available: start=%s", req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrStartInPast):
			h.logger.Warn("POST /public/bookings - Start in past: start=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrInvalidPhone):
			h.logger.Warn("POST /public/bookings - Invalid phone: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /public/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /public/bookings - Failed to create booking: resource=%s, error=%v", h.resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/bookings - Booking created successfully: booking_id=%s, start=%s",
		result.Booking.ID, result.Booking.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
