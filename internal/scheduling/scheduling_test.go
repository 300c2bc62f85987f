package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

var kolkata = mustLocation("Asia/Kolkata")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// 2025-01-06 - понедельник
var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 6, hour, minute, 0, 0, kolkata)
}

func TestResolveWorkingHours(t *testing.T) {
	tests := []struct {
		name      string
		hours     []domain.WorkingHours
		wantOpen  time.Time
		wantClose time.Time
		closed    bool
	}{
		{
			name:      "missing day falls back to default window",
			hours:     []domain.WorkingHours{{Day: "tuesday", Open: "09:00", Close: "18:00"}},
			wantOpen:  at(10, 0),
			wantClose: at(20, 0),
		},
		{
			name:      "configured day",
			hours:     []domain.WorkingHours{{Day: "Monday", Open: "09:30", Close: "18:00"}},
			wantOpen:  at(9, 30),
			wantClose: at(18, 0),
		},
		{
			name:   "closed day",
			hours:  []domain.WorkingHours{{Day: "monday", Closed: true}},
			closed: true,
		},
		{
			name:   "close before open is treated as closed",
			hours:  []domain.WorkingHours{{Day: "monday", Open: "18:00", Close: "09:00"}},
			closed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ResolveWorkingHours(monday, tt.hours, kolkata)
			require.NoError(t, err)
			assert.Equal(t, tt.closed, w.Closed)
			if !tt.closed {
				assert.True(t, tt.wantOpen.Equal(w.Open), "open %s", w.Open)
				assert.True(t, tt.wantClose.Equal(w.Close), "close %s", w.Close)
			}
		})
	}
}

func TestResolveWorkingHours_InvalidTime(t *testing.T) {
	_, err := ResolveWorkingHours(monday, []domain.WorkingHours{{Day: "monday", Open: "9am", Close: "18:00"}}, kolkata)
	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}

func TestGenerateSlots_Properties(t *testing.T) {
	window := DayWindow{Open: at(10, 0), Close: at(20, 0)}

	cases := []struct {
		duration time.Duration
		step     time.Duration
		want     int
	}{
		{30 * time.Minute, 30 * time.Minute, 20},
		{90 * time.Minute, 30 * time.Minute, 18},
		{45 * time.Minute, 15 * time.Minute, 38},
		{30 * time.Minute, 60 * time.Minute, 10},
		{11 * time.Hour, 30 * time.Minute, 0},
	}

	for _, c := range cases {
		slots, err := GenerateSlots(window, c.duration, c.step)
		require.NoError(t, err)
		assert.Len(t, slots, c.want, "duration=%s step=%s", c.duration, c.step)

		for i, s := range slots {
			assert.Equal(t, c.duration, s.Duration())
			assert.False(t, s.Start.Before(window.Open))
			assert.False(t, s.End.After(window.Close))
			if i > 0 {
				assert.Equal(t, c.step, s.Start.Sub(slots[i-1].Start))
			}
		}
	}
}

func TestGenerateSlots_Errors(t *testing.T) {
	window := DayWindow{Open: at(10, 0), Close: at(20, 0)}

	_, err := GenerateSlots(window, 0, 30*time.Minute)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = GenerateSlots(window, 30*time.Minute, 0)
	assert.ErrorIs(t, err, ErrInvalidStep)

	slots, err := GenerateSlots(DayWindow{Closed: true}, 30*time.Minute, 30*time.Minute)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDropStarted(t *testing.T) {
	slots, err := GenerateSlots(DayWindow{Open: at(10, 0), Close: at(12, 0)}, 30*time.Minute, 30*time.Minute)
	require.NoError(t, err)

	// Слот, начинающийся ровно сейчас, уже недоступен
	left := DropStarted(slots, at(10, 30))
	require.Len(t, left, 2)
	assert.True(t, left[0].Start.Equal(at(11, 0)))

	assert.Empty(t, DropStarted(slots, at(23, 0)))
}

func TestEvaluate(t *testing.T) {
	booked := &domain.Booking{StartTime: at(10, 0), EndTime: at(10, 30), Status: domain.StatusPending}
	cancelled := &domain.Booking{StartTime: at(10, 0), EndTime: at(10, 30), Status: domain.StatusCancelled}

	eval := Evaluate(TimeRange{Start: at(10, 0), End: at(10, 30)}, 1, []*domain.Booking{booked, cancelled})
	assert.Equal(t, Evaluation{OverlapCount: 1, RemainingSeats: 0, Available: false}, eval)

	eval = Evaluate(TimeRange{Start: at(10, 30), End: at(11, 0)}, 1, []*domain.Booking{booked})
	assert.Equal(t, Evaluation{OverlapCount: 0, RemainingSeats: 1, Available: true}, eval)

	eval = Evaluate(TimeRange{Start: at(10, 0), End: at(11, 0)}, 2, []*domain.Booking{booked, booked, booked})
	assert.Equal(t, 0, eval.RemainingSeats)
	assert.False(t, eval.Available)
}

func TestEvaluate_CancellationFreesSeat(t *testing.T) {
	b := &domain.Booking{StartTime: at(12, 0), EndTime: at(13, 0), Status: domain.StatusConfirmed}
	window := TimeRange{Start: at(12, 30), End: at(13, 0)}

	before := Evaluate(window, 2, []*domain.Booking{b})
	b.Status = domain.StatusCancelled
	after := Evaluate(window, 2, []*domain.Booking{b})

	assert.Greater(t, after.RemainingSeats, before.RemainingSeats)
}

func TestPeakConcurrency(t *testing.T) {
	booking := func(fromH, fromM, toH, toM int, status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{StartTime: at(fromH, fromM), EndTime: at(toH, toM), Status: status}
	}

	tests := []struct {
		name     string
		bookings []*domain.Booking
		want     int
	}{
		{name: "empty", want: 0},
		{
			name: "back to back do not overlap",
			bookings: []*domain.Booking{
				booking(10, 0, 10, 30, domain.StatusPending),
				booking(10, 30, 11, 0, domain.StatusConfirmed),
			},
			want: 1,
		},
		{
			name: "long booking spans two short ones",
			bookings: []*domain.Booking{
				booking(10, 0, 12, 0, domain.StatusConfirmed),
				booking(10, 0, 10, 30, domain.StatusPending),
				booking(11, 0, 11, 30, domain.StatusPending),
				booking(11, 15, 11, 45, domain.StatusPending),
			},
			want: 3,
		},
		{
			name: "cancelled bookings are ignored",
			bookings: []*domain.Booking{
				booking(10, 0, 11, 0, domain.StatusConfirmed),
				booking(10, 0, 11, 0, domain.StatusCancelled),
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeakConcurrency(tt.bookings))
		})
	}
}

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookings) GetActiveOverlapping(_ context.Context, _ string, start, end time.Time, _ *string) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.HoldsCapacity() && b.Overlaps(start, end) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeSchedules struct {
	cfg *domain.ScheduleConfig
}

func (f *fakeSchedules) GetConfig(context.Context, string) (*domain.ScheduleConfig, error) {
	return f.cfg, nil
}

func TestConflictGuard_IsAvailable(t *testing.T) {
	existing := &domain.Booking{ID: "b-1", StartTime: at(10, 0), EndTime: at(11, 0), Status: domain.StatusConfirmed}
	guard := NewConflictGuard(
		&fakeBookings{bookings: []*domain.Booking{existing}},
		&fakeSchedules{cfg: &domain.ScheduleConfig{TotalSeats: 1}},
	)
	ctx := context.Background()

	ok, eval, err := guard.IsAvailable(ctx, "salon", at(10, 30), at(11, 30), nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, eval.OverlapCount)

	// Перенос записи на пересекающееся с ней же время
	ok, _, err = guard.IsAvailable(ctx, "salon", at(10, 30), at(11, 30), ptr.Ptr("b-1"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _, err = guard.IsAvailable(ctx, "salon", at(11, 0), at(12, 0), nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConflictGuard_StorageError(t *testing.T) {
	storageErr := errors.New("connection refused")
	guard := NewConflictGuard(
		&fakeBookings{err: storageErr},
		&fakeSchedules{cfg: &domain.ScheduleConfig{TotalSeats: 1}},
	)

	_, _, err := guard.IsAvailable(context.Background(), "salon", at(10, 0), at(11, 0), nil)
	assert.ErrorIs(t, err, storageErr)
}
