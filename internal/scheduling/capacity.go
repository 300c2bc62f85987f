package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Evaluation результат проверки вместимости для одного окна
type Evaluation struct {
	OverlapCount   int
	RemainingSeats int
	Available      bool
}

// Evaluate считает активные записи, пересекающие окно, и сравнивает с числом мест.
// Отменённые записи не учитываются
func Evaluate(candidate TimeRange, totalSeats int, bookings []*domain.Booking) Evaluation {
	count := 0
	for _, b := range bookings {
		if !b.HoldsCapacity() {
			continue
		}
		if b.Overlaps(candidate.Start, candidate.End) {
			count++
		}
	}

	remaining := totalSeats - count
	if remaining < 0 {
		remaining = 0
	}

	return Evaluation{
		OverlapCount:   count,
		RemainingSeats: remaining,
		Available:      count < totalSeats,
	}
}

// PeakConcurrency максимальное число активных записей, идущих одновременно.
// Записи касающиеся границами не пересекаются
func PeakConcurrency(bookings []*domain.Booking) int {
	type edge struct {
		at    time.Time
		delta int
	}

	edges := make([]edge, 0, len(bookings)*2)
	for _, b := range bookings {
		if !b.HoldsCapacity() {
			continue
		}
		edges = append(edges, edge{at: b.StartTime, delta: 1}, edge{at: b.EndTime, delta: -1})
	}

	// На одном и том же моменте окончание обрабатывается раньше начала
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].at.Equal(edges[j].at) {
			return edges[i].delta < edges[j].delta
		}
		return edges[i].at.Before(edges[j].at)
	})

	peak, current := 0, 0
	for _, e := range edges {
		current += e.delta
		if current > peak {
			peak = current
		}
	}
	return peak
}
