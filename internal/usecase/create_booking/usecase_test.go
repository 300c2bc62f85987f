package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/notification"
	"github.com/m04kA/SMC-SalonBooking/internal/testutil"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type fixture struct {
	store   *memory.Store
	gate    *testutil.Gate
	clock   *testutil.Clock
	relay   *testutil.Relay
	metrics *metrics.Metrics
	uc      *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:   memory.NewStore(),
		gate:    testutil.NewGate(true),
		clock:   testutil.NewClock(testutil.Monday),
		relay:   &testutil.Relay{},
		metrics: metrics.New("test"),
	}
	f.uc = NewUseCase(
		f.store.Bookings(),
		f.store.Schedules(),
		testutil.NewCatalog(),
		f.gate,
		f.store.TxManager(),
		notification.NewComposer("IN"),
		f.relay,
		f.metrics,
		"IN",
		logger.NewNop(),
	).WithTimeProvider(f.clock)

	return f
}

func request(start time.Time, serviceIDs ...string) *Request {
	return &Request{
		ResourceID:  testutil.ResourceID,
		ServiceIDs:  serviceIDs,
		ClientName:  "  Asha  ",
		ClientPhone: testutil.ClientPhone,
		StartTime:   start,
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store)
	start := testutil.At(testutil.Monday, 14, 30)

	resp, err := f.uc.Execute(context.Background(), request(start, testutil.ServiceHaircut, testutil.ServiceBlowDry))
	require.NoError(t, err)

	b := resp.Booking
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, "Asha", b.ClientName)
	assert.Equal(t, "+919876543210", b.ClientPhone)
	assert.Equal(t, "Haircut + Blow Dry", b.ServiceName)
	assert.Equal(t, []string{testutil.ServiceHaircut, testutil.ServiceBlowDry}, b.ServiceIDs)
	assert.InDelta(t, 800.0, b.TotalPrice, 0.001)
	assert.Equal(t, time.Hour, b.EndTime.Sub(b.StartTime))

	stored, err := f.store.Bookings().GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.EndTime, stored.EndTime)

	// Создание не пишет в журнал изменений
	history, err := f.store.Changes().GetByBookingID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	require.NotNil(t, resp.Notification)
	assert.Equal(t, domain.EventRequested, resp.Notification.Event)
	assert.Equal(t, "918879878493", resp.Notification.Target)
	assert.Equal(t, []domain.NotificationEvent{domain.EventRequested}, f.relay.Events())

	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.BookingsCreated))
}

func TestExecute_SkipsMissingAndInactiveServices(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store)

	resp, err := f.uc.Execute(context.Background(), request(
		testutil.At(testutil.Monday, 11, 0),
		"unknown", testutil.ServiceRetired, testutil.ServiceColor, testutil.ServiceColor,
	))
	require.NoError(t, err)
	assert.Equal(t, []string{testutil.ServiceColor}, resp.Booking.ServiceIDs)
	assert.Equal(t, "Hair Color", resp.Booking.ServiceName)
	assert.Equal(t, time.Hour, resp.Booking.Duration())

	_, err = f.uc.Execute(context.Background(), request(testutil.At(testutil.Monday, 15, 0), "unknown", testutil.ServiceRetired))
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_DurationOverride(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store)

	req := request(testutil.At(testutil.Monday, 10, 0), testutil.ServiceHaircut)
	req.TotalDurationMinutes = ptr.Ptr(90)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, resp.Booking.Duration())
}

func TestExecute_Conflict(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(testutil.At(testutil.Monday, 10, 0), testutil.ServiceHaircut))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request(testutil.At(testutil.Monday, 10, 15), testutil.ServiceHaircut))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.BookingConflicts.WithLabelValues("create")))

	// Соседнее окно свободно: [10:00, 10:30) и [10:30, 11:00) не пересекаются
	_, err = f.uc.Execute(ctx, request(testutil.At(testutil.Monday, 10, 30), testutil.ServiceHaircut))
	assert.NoError(t, err)

	bookings, err := f.store.Bookings().List(ctx, domain.BookingsFilter{ResourceID: testutil.ResourceID})
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestExecute_ConcurrentRequestsForLastSeat(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store, func(cfg *domain.ScheduleConfig) { cfg.TotalSeats = 2 })
	ctx := context.Background()
	start := testutil.At(testutil.Monday, 16, 0)

	_, err := f.uc.Execute(ctx, request(start, testutil.ServiceHaircut))
	require.NoError(t, err)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(ctx, request(start, testutil.ServiceHaircut))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, domain.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
}

func TestExecute_StartInPast(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store)
	f.clock.Set(testutil.At(testutil.Monday, 12, 0))

	_, err := f.uc.Execute(context.Background(), request(testutil.At(testutil.Monday, 11, 30), testutil.ServiceHaircut))
	assert.ErrorIs(t, err, ErrStartInPast)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(context.Background(), request(testutil.At(testutil.Monday, 12, 0), testutil.ServiceHaircut))
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestExecute_GateDisabled(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store)
	ctx := context.Background()

	require.NoError(t, f.gate.SetBookingEnabled(ctx, testutil.ResourceID, false))
	_, err := f.uc.Execute(ctx, request(testutil.At(testutil.Monday, 10, 0), testutil.ServiceHaircut))
	assert.ErrorIs(t, err, ErrBookingDisabled)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.gate.SetBookingEnabled(ctx, testutil.ResourceID, true))
	_, err = f.uc.Execute(ctx, request(testutil.At(testutil.Monday, 10, 0), testutil.ServiceHaircut))
	assert.NoError(t, err)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store)
	start := testutil.At(testutil.Monday, 10, 0)

	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{name: "no services", mutate: func(r *Request) { r.ServiceIDs = nil }, want: ErrInvalidInput},
		{name: "blank name", mutate: func(r *Request) { r.ClientName = "   " }, want: ErrInvalidInput},
		{name: "no start", mutate: func(r *Request) { r.StartTime = time.Time{} }, want: ErrInvalidInput},
		{name: "zero override", mutate: func(r *Request) { r.TotalDurationMinutes = ptr.Ptr(0) }, want: ErrInvalidInput},
		{name: "bad phone", mutate: func(r *Request) { r.ClientPhone = "call me" }, want: ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(start, testutil.ServiceHaircut)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestExecute_ScheduleMissingLeavesNoBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(testutil.At(testutil.Monday, 10, 0), testutil.ServiceHaircut))
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	bookings, err := f.store.Bookings().List(ctx, domain.BookingsFilter{ResourceID: testutil.ResourceID})
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestExecute_NoContactPhoneNoNotification(t *testing.T) {
	f := newFixture(t)
	testutil.SeedSchedule(t, f.store, func(cfg *domain.ScheduleConfig) { cfg.ContactPhone = "" })

	resp, err := f.uc.Execute(context.Background(), request(testutil.At(testutil.Monday, 10, 0), testutil.ServiceHaircut))
	require.NoError(t, err)
	assert.Nil(t, resp.Notification)
	assert.Empty(t, f.relay.Events())
}
