package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// ParseBookingStatus проверяет, что строка является одним из известных статусов
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// IsValid returns true for one of the five known statuses
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// HoldsCapacity returns true if a booking in this status occupies a seat.
// Only cancelled bookings release capacity
func (s BookingStatus) HoldsCapacity() bool {
	return s != StatusCancelled
}

// Booking represents a salon appointment
type Booking struct {
	ID          string
	ResourceID  string
	ServiceIDs  []string
	StaffID     *string
	ClientName  string
	ClientPhone string
	Notes       *string
	StartTime   time.Time
	EndTime     time.Time
	Status      BookingStatus

	// Denormalized data for history
	ServiceName string
	TotalPrice  float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration длительность записи
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// HoldsCapacity returns true if the booking occupies a seat
func (b *Booking) HoldsCapacity() bool {
	return b.Status.HoldsCapacity()
}

// Overlaps проверяет пересечение полуинтервалов [StartTime, EndTime) и [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return end.After(b.StartTime) && start.Before(b.EndTime)
}

// ShortID короткий идентификатор для сообщений клиенту
func (b *Booking) ShortID() string {
	id := strings.ReplaceAll(b.ID, "-", "")
	if len(id) > ShortIDLength {
		id = id[:ShortIDLength]
	}
	return strings.ToUpper(id)
}

// Clone возвращает глубокую копию бронирования
func (b *Booking) Clone() *Booking {
	c := *b
	c.ServiceIDs = append([]string(nil), b.ServiceIDs...)
	if b.StaffID != nil {
		staff := *b.StaffID
		c.StaffID = &staff
	}
	if b.Notes != nil {
		notes := *b.Notes
		c.Notes = &notes
	}
	return &c
}

// BookingsFilter фильтр для списка бронирований ресурса
type BookingsFilter struct {
	ResourceID string         // Обязательный параметр
	From       *time.Time     // Начало записи >= From (опционально)
	To         *time.Time     // Начало записи < To (опционально)
	Status     *BookingStatus // Фильтр по статусу (опционально)
}
