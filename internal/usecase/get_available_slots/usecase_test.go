package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/testutil"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fixture struct {
	store *memory.Store
	gate  *testutil.Gate
	clock *testutil.Clock
	uc    *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	gate := testutil.NewGate(true)
	clock := testutil.NewClock(testutil.Monday)

	uc := NewUseCase(store.Bookings(), store.Schedules(), testutil.NewCatalog(), gate, logger.NewNop()).
		WithTimeProvider(clock)

	return &fixture{store: store, gate: gate, clock: clock, uc: uc}
}

func (f *fixture) book(t *testing.T, id string, start time.Time, minutes int, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		ID:         id,
		ResourceID: testutil.ResourceID,
		StartTime:  start,
		EndTime:    start.Add(time.Duration(minutes) * time.Minute),
		Status:     status,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) slots(t *testing.T, date time.Time, serviceID string, override *int) []domain.Slot {
	t.Helper()

	resp, err := f.uc.Execute(context.Background(), &Request{
		ResourceID:           testutil.ResourceID,
		ServiceID:            serviceID,
		Date:                 date,
		TotalDurationMinutes: override,
	})
	require.NoError(t, err)
	return resp.Slots
}

func displayTimes(slots []domain.Slot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.DisplayTime)
	}
	return result
}

func TestExecute_OneSeatBookedAtTen(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store)
	f.book(t, "b-1", testutil.At(testutil.Monday, 10, 0), 30, domain.StatusPending)

	slots := f.slots(t, testutil.Monday, testutil.ServiceHaircut, nil)
	times := displayTimes(slots)

	assert.NotContains(t, times, "10:00")
	assert.Contains(t, times, "10:30")
	assert.Len(t, slots, 19)
	assert.Equal(t, "10:30", slots[0].DisplayTime)
	assert.Equal(t, "19:30", slots[len(slots)-1].DisplayTime)
	assert.Equal(t, 1, slots[0].RemainingSeats)
	assert.Equal(t, 1, slots[0].TotalSeats)
}

func TestExecute_SlotBoundsAndDuration(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store, func(cfg *domain.ScheduleConfig) {
		cfg.TotalSeats = 3
		cfg.SlotStepMinutes = 15
		cfg.WorkingHours = []domain.WorkingHours{{
			Day:   "Monday",
			Open:  types.TimeString("09:30"),
			Close: types.TimeString("18:00"),
		}}
	})

	for _, minutes := range []int{15, 45, 90, 240} {
		slots := f.slots(t, testutil.Monday, testutil.ServiceHaircut, ptr.Ptr(minutes))
		require.NotEmpty(t, slots)

		open := testutil.At(testutil.Monday, 9, 30)
		closeAt := testutil.At(testutil.Monday, 18, 0)
		for _, s := range slots {
			assert.Equal(t, time.Duration(minutes)*time.Minute, s.Duration(), "duration %d", minutes)
			assert.False(t, s.StartTime.Before(open))
			assert.False(t, s.EndTime.After(closeAt))
		}
		assert.True(t, slots[len(slots)-1].EndTime.Add(15*time.Minute).After(closeAt))
	}
}

func TestExecute_ClosedDayAndEmptyWindow(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store, func(cfg *domain.ScheduleConfig) {
		cfg.WorkingHours = []domain.WorkingHours{
			{Day: "sunday", Closed: true},
			{Day: "tuesday", Open: types.TimeString("18:00"), Close: types.TimeString("09:00")},
		}
	})

	sunday := testutil.Monday.AddDate(0, 0, 6)
	assert.Empty(t, f.slots(t, sunday, testutil.ServiceHaircut, nil))

	tuesday := testutil.Monday.AddDate(0, 0, 1)
	assert.Empty(t, f.slots(t, tuesday, testutil.ServiceHaircut, nil))

	// Длительность больше рабочего окна
	assert.Empty(t, f.slots(t, testutil.Monday, testutil.ServiceHaircut, ptr.Ptr(11*60)))
}

func TestExecute_DropsStartedAndPastSlots(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store)
	f.clock.Set(testutil.At(testutil.Monday, 12, 10))

	slots := f.slots(t, testutil.Monday, testutil.ServiceHaircut, nil)
	require.NotEmpty(t, slots)
	assert.Equal(t, "12:30", slots[0].DisplayTime)

	// Ровно в момент начала слот уже недоступен
	f.clock.Set(testutil.At(testutil.Monday, 12, 30))
	slots = f.slots(t, testutil.Monday, testutil.ServiceHaircut, nil)
	assert.Equal(t, "13:00", slots[0].DisplayTime)

	yesterday := testutil.Monday.AddDate(0, 0, -1)
	assert.Empty(t, f.slots(t, yesterday, testutil.ServiceHaircut, nil))
}

func TestExecute_CancelFreesSeat(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store, func(cfg *domain.ScheduleConfig) { cfg.TotalSeats = 2 })
	b := f.book(t, "b-1", testutil.At(testutil.Monday, 10, 0), 60, domain.StatusConfirmed)

	before := f.slots(t, testutil.Monday, testutil.ServiceHaircut, nil)
	require.Equal(t, "10:00", before[0].DisplayTime)
	assert.Equal(t, 1, before[0].RemainingSeats)
	assert.Equal(t, 1, before[1].RemainingSeats)
	assert.Equal(t, 2, before[2].RemainingSeats)

	b.Status = domain.StatusCancelled
	_, err := f.store.Bookings().Update(context.Background(), b)
	require.NoError(t, err)

	after := f.slots(t, testutil.Monday, testutil.ServiceHaircut, nil)
	assert.Equal(t, 2, after[0].RemainingSeats)
	assert.Equal(t, 2, after[1].RemainingSeats)
}

func TestExecute_LongServiceOverlappingSlots(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store)
	f.book(t, "b-1", testutil.At(testutil.Monday, 11, 0), 30, domain.StatusConfirmed)

	// 60-минутная услуга при шаге 30: окна 10:30-11:30 и 11:00-12:00 заняты
	times := displayTimes(f.slots(t, testutil.Monday, testutil.ServiceColor, nil))
	assert.Contains(t, times, "10:00")
	assert.NotContains(t, times, "10:30")
	assert.NotContains(t, times, "11:00")
	assert.Contains(t, times, "11:30")
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := &Request{ResourceID: testutil.ResourceID, ServiceID: testutil.ServiceHaircut, Date: testutil.Monday}

	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	testutil.SeedSchedule(t, f.store)

	_, err = f.uc.Execute(ctx, &Request{ResourceID: testutil.ResourceID, ServiceID: "unknown", Date: testutil.Monday})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.uc.Execute(ctx, &Request{ResourceID: testutil.ResourceID, ServiceID: testutil.ServiceRetired, Date: testutil.Monday})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = f.uc.Execute(ctx, &Request{ResourceID: testutil.ResourceID, ServiceID: testutil.ServiceHaircut})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(ctx, &Request{
		ResourceID:           testutil.ResourceID,
		ServiceID:            testutil.ServiceHaircut,
		Date:                 testutil.Monday,
		TotalDurationMinutes: ptr.Ptr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_GateDisabled(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store)
	ctx := context.Background()
	req := &Request{ResourceID: testutil.ResourceID, ServiceID: testutil.ServiceHaircut, Date: testutil.Monday}

	require.NoError(t, f.gate.SetBookingEnabled(ctx, testutil.ResourceID, false))
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrBookingDisabled)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.gate.SetBookingEnabled(ctx, testutil.ResourceID, true))
	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Slots)
}
