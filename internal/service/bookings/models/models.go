package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение бронирований салона
type ListBookingsRequest struct {
	ResourceID string
	FromDate   *string // YYYY-MM-DD, включительно (опционально)
	ToDate     *string // YYYY-MM-DD, включительно (опционально)
	Status     *string // Фильтр по статусу (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string    `json:"id"`
	Reference       string    `json:"reference"`
	ResourceID      string    `json:"resourceId"`
	ServiceIDs      []string  `json:"serviceIds"`
	ServiceName     string    `json:"serviceName"`
	TotalPrice      float64   `json:"totalPrice"`
	StaffID         *string   `json:"staffId,omitempty"`
	StaffName       *string   `json:"staffName,omitempty"`
	ClientName      string    `json:"clientName"`
	ClientPhone     string    `json:"clientPhone"`
	Notes           *string   `json:"notes,omitempty"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// ChangeResponse запись журнала изменений
type ChangeResponse struct {
	ID           string     `json:"id"`
	BookingID    string     `json:"bookingId"`
	ActorID      string     `json:"actorId"`
	OldStartTime *time.Time `json:"oldStartTime,omitempty"`
	NewStartTime *time.Time `json:"newStartTime,omitempty"`
	OldStaffID   *string    `json:"oldStaffId,omitempty"`
	NewStaffID   *string    `json:"newStaffId,omitempty"`
	OldStatus    *string    `json:"oldStatus,omitempty"`
	NewStatus    *string    `json:"newStatus,omitempty"`
	Reason       string     `json:"reason,omitempty"`
	ChangedAt    time.Time  `json:"changedAt"`
}

// ChangeListResponse история изменений бронирования, новые записи первыми
type ChangeListResponse struct {
	Changes []ChangeResponse `json:"changes"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	serviceIDs := b.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []string{}
	}

	return &BookingResponse{
		ID:              b.ID,
		Reference:       b.ShortID(),
		ResourceID:      b.ResourceID,
		ServiceIDs:      serviceIDs,
		ServiceName:     b.ServiceName,
		TotalPrice:      b.TotalPrice,
		StaffID:         b.StaffID,
		ClientName:      b.ClientName,
		ClientPhone:     b.ClientPhone,
		Notes:           b.Notes,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: int(b.Duration() / time.Minute),
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	resp.Total = len(resp.Bookings)

	return resp
}

// FromDomainChange конвертирует запись журнала в DTO
func FromDomainChange(c *domain.BookingChange) ChangeResponse {
	return ChangeResponse{
		ID:           c.ID,
		BookingID:    c.BookingID,
		ActorID:      c.ActorID,
		OldStartTime: c.OldStartTime,
		NewStartTime: c.NewStartTime,
		OldStaffID:   c.OldStaffID,
		NewStaffID:   c.NewStaffID,
		OldStatus:    statusString(c.OldStatus),
		NewStatus:    statusString(c.NewStatus),
		Reason:       c.Reason,
		ChangedAt:    c.ChangedAt,
	}
}

// FromDomainChangeList конвертирует историю изменений в DTO
func FromDomainChangeList(changes []*domain.BookingChange) *ChangeListResponse {
	resp := &ChangeListResponse{
		Changes: make([]ChangeResponse, 0, len(changes)),
	}
	for _, c := range changes {
		resp.Changes = append(resp.Changes, FromDomainChange(c))
	}
	return resp
}

func statusString(s *domain.BookingStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
