package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модели

// WorkingHoursRequest расписание одного дня недели
type WorkingHoursRequest struct {
	Day    string `json:"day" validate:"required"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

// UpdateScheduleRequest запрос на обновление конфигурации расписания.
// Все поля опциональны - обновляются только переданные значения.
// WorkingHours заменяет расписание целиком
type UpdateScheduleRequest struct {
	ResourceName    *string                `json:"resourceName,omitempty"`
	ContactPhone    *string                `json:"contactPhone,omitempty"`
	SlotStepMinutes *int                   `json:"slotStepMinutes,omitempty"`
	TotalSeats      *int                   `json:"totalSeats,omitempty"`
	Timezone        *string                `json:"timezone,omitempty"`
	WorkingHours    *[]WorkingHoursRequest `json:"workingHours,omitempty"`
}

// Response модели

// WorkingHoursResponse расписание одного дня недели
type WorkingHoursResponse struct {
	Day    string `json:"day"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

// ScheduleResponse конфигурация расписания салона
type ScheduleResponse struct {
	ResourceID      string                 `json:"resourceId"`
	ResourceName    string                 `json:"resourceName"`
	ContactPhone    string                 `json:"contactPhone,omitempty"`
	SlotStepMinutes int                    `json:"slotStepMinutes"`
	TotalSeats      int                    `json:"totalSeats"`
	Timezone        string                 `json:"timezone"`
	WorkingHours    []WorkingHoursResponse `json:"workingHours"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ScheduleResponse {
	if c == nil {
		return nil
	}

	resp := &ScheduleResponse{
		ResourceID:      c.ResourceID,
		ResourceName:    c.ResourceName,
		ContactPhone:    c.ContactPhone,
		SlotStepMinutes: c.SlotStepMinutes,
		TotalSeats:      c.TotalSeats,
		Timezone:        c.Timezone,
		WorkingHours:    make([]WorkingHoursResponse, 0, len(c.WorkingHours)),
		UpdatedAt:       c.UpdatedAt,
	}

	for _, wh := range c.WorkingHours {
		resp.WorkingHours = append(resp.WorkingHours, WorkingHoursResponse{
			Day:    wh.Day,
			Open:   wh.Open.String(),
			Close:  wh.Close.String(),
			Closed: wh.Closed,
		})
	}

	return resp
}

// ToDomainWorkingHours конвертирует расписание дня в domain модель.
// Время нормализуется к HH:MM
func (r WorkingHoursRequest) ToDomainWorkingHours() (domain.WorkingHours, error) {
	wh := domain.WorkingHours{Day: r.Day, Closed: r.Closed}
	if r.Closed {
		return wh, nil
	}

	open, err := types.NewTimeStringFromString(r.Open)
	if err != nil {
		return wh, err
	}
	closeAt, err := types.NewTimeStringFromString(r.Close)
	if err != nil {
		return wh, err
	}

	wh.Open = open
	wh.Close = closeAt
	return wh, nil
}
