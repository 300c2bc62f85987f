package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgMissingDate      = "дата обязательна"
	msgInvalidParams    = "некорректный формат даты (YYYY-MM-DD) или длительности"
	msgInvalidInput     = "некорректные параметры запроса"
	msgBookingDisabled  = "онлайн-запись отключена"
	msgScheduleNotFound = "расписание салона не настроено"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase    GetAvailableSlotsUseCase
	resourceID string
	logger     Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, resourceID string, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		resourceID: resourceID,
		logger:     logger,
	}
}

// Handle GET /api/v1/public/availability
// Query params: serviceId (required), date (required, YYYY-MM-DD), totalDuration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceID := query.Get("serviceId")
	if serviceID == "" {
		h.logger.Warn("GET /public/availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	date := query.Get("date")
	if date == "" {
		h.logger.Warn("GET /public/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(h.resourceID, serviceID, date, query.Get("totalDuration"))
	if err != nil {
		h.logger.Warn("GET /public/availability - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBookingDisabled):
			h.logger.Warn("GET /public/availability - Booking disabled: resource=%s", h.resourceID)
			handlers.RespondForbidden(w, msgBookingDisabled)

		case errors.Is(err, getAvailableSlots.ErrScheduleNotFound):
			h.logger.Warn("GET /public/availability - Schedule not found: resource=%s", h.resourceID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /public/availability - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /public/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /public/availability - Failed to get slots: service_id=%s, date=%s, error=%v",
				serviceID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/availability - Slots retrieved successfully: service_id=%s, date=%s, slots_count=%d",
		serviceID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
