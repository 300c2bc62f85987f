package scheduling

import (
	"time"
)

// TimeRange полуинтервал [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps: интервалы пересекаются, если не выполняется e <= bStart или s >= bEnd
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Duration длительность интервала
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// GenerateSlots перечисляет окна длительностью duration внутри рабочего окна.
// Начало сдвигается на step, пока start+duration <= Close.
// Соседние окна пересекаются, если duration > step: пересечения разбирает Evaluate
func GenerateSlots(window DayWindow, duration, step time.Duration) ([]TimeRange, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if step <= 0 {
		return nil, ErrInvalidStep
	}
	if window.Closed {
		return []TimeRange{}, nil
	}

	slots := make([]TimeRange, 0)
	for start := window.Open; !start.Add(duration).After(window.Close); start = start.Add(step) {
		slots = append(slots, TimeRange{Start: start, End: start.Add(duration)})
	}

	return slots, nil
}

// DropStarted убирает окна, начало которых не позже now.
// Для сегодняшней даты остаются только будущие слоты, для прошедших дат не остаётся ничего
func DropStarted(slots []TimeRange, now time.Time) []TimeRange {
	result := make([]TimeRange, 0, len(slots))
	for _, s := range slots {
		if s.Start.After(now) {
			result = append(result, s)
		}
	}
	return result
}
