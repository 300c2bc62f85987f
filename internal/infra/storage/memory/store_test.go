package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

var base = time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)

func newBooking(id string, offset time.Duration, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		ResourceID: "salon",
		StartTime:  base.Add(offset),
		EndTime:    base.Add(offset + 30*time.Minute),
		Status:     status,
	}
}

func TestTxManager_RollbackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	failure := errors.New("boom")

	err := s.TxManager().Do(ctx, func(txCtx context.Context) error {
		_, err := s.Bookings().Create(txCtx, newBooking("b-1", 0, domain.StatusPending))
		require.NoError(t, err)
		require.NoError(t, s.Changes().Create(txCtx, &domain.BookingChange{ID: "c-1", BookingID: "b-1"}))
		return failure
	})

	assert.ErrorIs(t, err, failure)

	_, err = s.Bookings().GetByID(ctx, "b-1")
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	history, err := s.Changes().GetByBookingID(ctx, "b-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTxManager_RollbackRestoresUpdate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.TxManager().Do(ctx, func(txCtx context.Context) error {
		_, err := s.Bookings().Create(txCtx, newBooking("b-1", 0, domain.StatusPending))
		return err
	}))

	_ = s.TxManager().Do(ctx, func(txCtx context.Context) error {
		b, err := s.Bookings().GetByID(txCtx, "b-1")
		require.NoError(t, err)
		b.Status = domain.StatusCancelled
		_, err = s.Bookings().Update(txCtx, b)
		require.NoError(t, err)
		return errors.New("audit write failed")
	})

	b, err := s.Bookings().GetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, b.Status)
}

func TestTxManager_RollbackKeepsWritesOutsideTx(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Schedules().Upsert(ctx, domain.NewDefaultScheduleConfig("salon"))
	require.NoError(t, err)

	err = s.TxManager().Do(ctx, func(txCtx context.Context) error {
		_, err := s.Bookings().Create(txCtx, newBooking("b-1", 0, domain.StatusPending))
		require.NoError(t, err)

		// Параллельное изменение расписания фиксируется сразу
		cfg := domain.NewDefaultScheduleConfig("salon")
		cfg.TotalSeats = 5
		_, err = s.Schedules().Upsert(context.Background(), cfg)
		require.NoError(t, err)
		require.NoError(t, s.Changes().Create(context.Background(), &domain.BookingChange{ID: "c-out", BookingID: "b-2"}))

		return errors.New("slot taken")
	})
	require.Error(t, err)

	got, err := s.Schedules().GetConfig(ctx, "salon")
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalSeats)

	history, err := s.Changes().GetByBookingID(ctx, "b-2")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = s.Bookings().GetByID(ctx, "b-1")
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestTxManager_RollbackRestoresConfig(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_ = s.TxManager().Do(ctx, func(txCtx context.Context) error {
		_, err := s.Schedules().Upsert(txCtx, domain.NewDefaultScheduleConfig("salon"))
		require.NoError(t, err)
		return errors.New("seats check failed")
	})

	_, err := s.Schedules().GetConfig(ctx, "salon")
	assert.ErrorIs(t, err, scheduleRepo.ErrConfigNotFound)
}

func TestBookingRepository_GetActiveOverlapping(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Bookings()

	for _, b := range []*domain.Booking{
		newBooking("a", 0, domain.StatusConfirmed),
		newBooking("b", 0, domain.StatusCancelled),
		newBooking("c", 30*time.Minute, domain.StatusPending),
		newBooking("d", 15*time.Minute, domain.StatusNoShow),
	} {
		_, err := repo.Create(ctx, b)
		require.NoError(t, err)
	}

	got, err := repo.GetActiveOverlapping(ctx, "salon", base, base.Add(30*time.Minute), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "d", got[1].ID)

	got, err = repo.GetActiveOverlapping(ctx, "salon", base, base.Add(30*time.Minute), ptr.Ptr("a"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d", got[0].ID)
}

func TestBookingRepository_ListFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Bookings()

	_, _ = repo.Create(ctx, newBooking("late", 2*time.Hour, domain.StatusPending))
	_, _ = repo.Create(ctx, newBooking("early", 0, domain.StatusConfirmed))
	_, _ = repo.Create(ctx, newBooking("next-day", 24*time.Hour, domain.StatusPending))

	to := base.Add(12 * time.Hour)
	got, err := repo.List(ctx, domain.BookingsFilter{ResourceID: "salon", From: &base, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "late", got[1].ID)

	got, err = repo.List(ctx, domain.BookingsFilter{ResourceID: "salon", Status: ptr.Ptr(domain.StatusPending)})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestBookingRepository_LockResourceRequiresTx(t *testing.T) {
	s := NewStore()

	assert.ErrorIs(t, s.Bookings().LockResource(context.Background(), "salon"), bookingRepo.ErrNoTransaction)
	assert.NoError(t, s.TxManager().Do(context.Background(), func(txCtx context.Context) error {
		return s.Bookings().LockResource(txCtx, "salon")
	}))
}

func TestChangeRepository_NewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for _, id := range []string{"c-1", "c-2", "c-3"} {
		require.NoError(t, s.Changes().Create(ctx, &domain.BookingChange{ID: id, BookingID: "b-1"}))
	}
	require.NoError(t, s.Changes().Create(ctx, &domain.BookingChange{ID: "other", BookingID: "b-2"}))

	history, err := s.Changes().GetByBookingID(ctx, "b-1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "c-3", history[0].ID)
	assert.Equal(t, "c-1", history[2].ID)
}

func TestScheduleRepository(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Schedules().GetConfig(ctx, "salon")
	assert.ErrorIs(t, err, scheduleRepo.ErrConfigNotFound)

	cfg := domain.NewDefaultScheduleConfig("salon")
	cfg.WorkingHours = []domain.WorkingHours{{Day: "sunday", Closed: true}}
	_, err = s.Schedules().Upsert(ctx, cfg)
	require.NoError(t, err)

	// Изменение исходной структуры не влияет на сохранённую копию
	cfg.WorkingHours[0].Closed = false

	got, err := s.Schedules().GetConfig(ctx, "salon")
	require.NoError(t, err)
	assert.True(t, got.WorkingHours[0].Closed)
}
