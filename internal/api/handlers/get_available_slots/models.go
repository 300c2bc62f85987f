package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	DisplayTime    string    `json:"displayTime"`
	RemainingSeats int       `json:"remainingSeats"`
	TotalSeats     int       `json:"totalSeats"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string         `json:"date"`
	ServiceID string         `json:"serviceId"`
	Slots     []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(resourceID, serviceID, date, totalDuration string) (*getAvailableSlots.Request, error) {
	parsedDate, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		ResourceID: resourceID,
		ServiceID:  serviceID,
		Date:       parsedDate,
	}

	if totalDuration != "" {
		minutes, err := strconv.Atoi(totalDuration)
		if err != nil {
			return nil, err
		}
		req.TotalDurationMinutes = &minutes
	}

	return req, nil
}

// FromDomainSlots конвертирует слоты в HTTP модели
func FromDomainSlots(slots []domain.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, SlotResponse{
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			DisplayTime:    s.DisplayTime,
			RemainingSeats: s.RemainingSeats,
			TotalSeats:     s.TotalSeats,
		})
	}
	return result
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		Slots:     FromDomainSlots(resp.Slots),
	}
}
