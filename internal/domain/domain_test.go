package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus(" Confirmed ")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseBookingStatus("invalid_status")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: base, EndTime: base.Add(30 * time.Minute)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"same window", base, base.Add(30 * time.Minute), true},
		{"ends at booking start", base.Add(-30 * time.Minute), base, false},
		{"starts at booking end", base.Add(30 * time.Minute), base.Add(time.Hour), false},
		{"covers booking", base.Add(-time.Hour), base.Add(time.Hour), true},
		{"inside booking", base.Add(10 * time.Minute), base.Add(20 * time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Overlaps(tt.start, tt.end))
		})
	}
}

func TestBooking_ShortID(t *testing.T) {
	b := &Booking{ID: "3f2a9c1e-77aa-4b3c-9d1e-000000000000"}
	assert.Equal(t, "3F2A9C1E", b.ShortID())
}

func TestBooking_HoldsCapacity(t *testing.T) {
	for _, s := range AllStatuses {
		b := &Booking{Status: s}
		assert.Equal(t, s != StatusCancelled, b.HoldsCapacity(), s)
	}
}

func TestTransitionTables(t *testing.T) {
	permissive := PermissiveTransitions()
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			assert.True(t, permissive.Allows(from, to))
		}
	}

	strict := StrictTransitions()
	assert.True(t, strict.Allows(StatusPending, StatusConfirmed))
	assert.True(t, strict.Allows(StatusConfirmed, StatusNoShow))
	assert.True(t, strict.Allows(StatusConfirmed, StatusConfirmed))
	assert.False(t, strict.Allows(StatusCancelled, StatusConfirmed))
	assert.False(t, strict.Allows(StatusPending, StatusCompleted))
}

func TestScheduleConfig_Location(t *testing.T) {
	cfg := &ScheduleConfig{Timezone: "Europe/Moscow"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())

	cfg.Timezone = "Mars/Olympus"
	_, err = cfg.Location()
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestWorkingHours_Weekday(t *testing.T) {
	d, ok := WorkingHours{Day: "Monday"}.Weekday()
	assert.True(t, ok)
	assert.Equal(t, time.Monday, d)

	_, ok = WorkingHours{Day: "funday"}.Weekday()
	assert.False(t, ok)
}

func TestNotification_Link(t *testing.T) {
	n := &Notification{Target: "919876543210", Message: "Hi Asha & co"}
	assert.Equal(t, "https://wa.me/919876543210?text=Hi+Asha+%26+co", n.Link())

	assert.Empty(t, (&Notification{Message: "x"}).Link())
}
