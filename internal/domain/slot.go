package domain

import "time"

// Slot represents a time window available for booking. Not persisted
type Slot struct {
	StartTime      time.Time
	EndTime        time.Time
	DisplayTime    string // Время начала в часовом поясе ресурса, HH:MM
	RemainingSeats int
	TotalSeats     int
}

// Duration длительность слота
func (s *Slot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
