package get_next_available

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getNextAvailable "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_next_available"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidLimit     = "некорректный limit"
	msgBookingDisabled  = "онлайн-запись отключена"
	msgScheduleNotFound = "расписание салона не настроено"
	msgServiceNotFound  = "услуга не найдена"
)

// NextAvailableResponse HTTP response model
type NextAvailableResponse struct {
	ServiceID string                             `json:"serviceId"`
	Slots     []get_available_slots.SlotResponse `json:"slots"`
}

type Handler struct {
	useCase    GetNextAvailableUseCase
	resourceID string
	logger     Logger
}

func NewHandler(useCase GetNextAvailableUseCase, resourceID string, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		resourceID: resourceID,
		logger:     logger,
	}
}

// Handle GET /api/v1/public/availability/next
// Query params: serviceId (required), limit (optional, по умолчанию 3)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceID := query.Get("serviceId")
	if serviceID == "" {
		h.logger.Warn("GET /public/availability/next - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	var limit int
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /public/availability/next - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getNextAvailable.Request{
		ResourceID: h.resourceID,
		ServiceID:  serviceID,
		Limit:      limit,
	})
	if err != nil {
		switch {
		case errors.Is(err, getNextAvailable.ErrBookingDisabled):
			h.logger.Warn("GET /public/availability/next - Booking disabled: resource=%s", h.resourceID)
			handlers.RespondForbidden(w, msgBookingDisabled)

		case errors.Is(err, getNextAvailable.ErrScheduleNotFound):
			h.logger.Warn("GET /public/availability/next - Schedule not found: resource=%s", h.resourceID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getNextAvailable.ErrInvalidInput):
			h.logger.Warn("GET /public/availability/next - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)

		// Ошибки поиска слотов по дням приходят из get_available_slots
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /public/availability/next - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /public/availability/next - Failed to get slots: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/availability/next - Slots retrieved successfully: service_id=%s, slots_count=%d",
		serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, &NextAvailableResponse{
		ServiceID: result.ServiceID,
		Slots:     get_available_slots.FromDomainSlots(result.Slots),
	})
}
