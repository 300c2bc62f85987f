package domain

import "time"

// BookingChange запись журнала изменений бронирования. После создания не изменяется
type BookingChange struct {
	ID           string
	BookingID    string
	ResourceID   string
	ActorID      string
	OldStartTime *time.Time
	NewStartTime *time.Time
	OldStaffID   *string
	NewStaffID   *string
	OldStatus    *BookingStatus
	NewStatus    *BookingStatus
	Reason       string
	ChangedAt    time.Time
}
