package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/internal/testutil"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func newTestService(t *testing.T) (*Service, *memory.Store, *testutil.Gate) {
	t.Helper()

	store := memory.NewStore()
	gate := testutil.NewGate(true)
	testutil.SeedSchedule(t, store)

	ctx := context.Background()
	for _, b := range []*domain.Booking{
		{ID: "b-1", StartTime: testutil.At(testutil.Monday, 10, 0), Status: domain.StatusPending, StaffID: ptr.Ptr(testutil.StaffPriya)},
		{ID: "b-2", StartTime: testutil.At(testutil.Monday, 23, 30), Status: domain.StatusConfirmed, StaffID: ptr.Ptr("gone")},
		{ID: "b-3", StartTime: testutil.At(testutil.Monday.AddDate(0, 0, 1), 11, 0), Status: domain.StatusCancelled},
	} {
		b.ResourceID = testutil.ResourceID
		b.EndTime = b.StartTime.Add(30 * time.Minute)
		_, err := store.Bookings().Create(ctx, b)
		require.NoError(t, err)
	}
	_, err := store.Bookings().Create(ctx, &domain.Booking{
		ID:         "foreign",
		ResourceID: "other-salon",
		StartTime:  testutil.At(testutil.Monday, 10, 0),
		EndTime:    testutil.At(testutil.Monday, 10, 30),
		Status:     domain.StatusPending,
	})
	require.NoError(t, err)

	svc := NewService(store.Bookings(), store.Changes(), store.Schedules(), testutil.NewCatalog(), gate, logger.NewNop())
	return svc, store, gate
}

func TestList(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.ListBookingsRequest
		wantIDs []string
		wantErr error
	}{
		{
			name:    "all bookings of the salon",
			req:     models.ListBookingsRequest{},
			wantIDs: []string{"b-1", "b-2", "b-3"},
		},
		{
			// 23:30 по времени салона уже 18:00 UTC, но всё ещё понедельник
			name:    "single day in salon timezone",
			req:     models.ListBookingsRequest{FromDate: ptr.Ptr("2025-01-06"), ToDate: ptr.Ptr("2025-01-06")},
			wantIDs: []string{"b-1", "b-2"},
		},
		{
			name:    "status filter",
			req:     models.ListBookingsRequest{Status: ptr.Ptr("cancelled")},
			wantIDs: []string{"b-3"},
		},
		{
			name:    "unknown status",
			req:     models.ListBookingsRequest{Status: ptr.Ptr("archived")},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "bad date",
			req:     models.ListBookingsRequest{FromDate: ptr.Ptr("06.01.2025")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "reversed range",
			req:     models.ListBookingsRequest{FromDate: ptr.Ptr("2025-01-07"), ToDate: ptr.Ptr("2025-01-05")},
			wantErr: ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.ResourceID = testutil.ResourceID

			resp, err := svc.List(ctx, &req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, len(resp.Bookings))
			for _, b := range resp.Bookings {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), resp.Total)
		})
	}
}

func TestList_StaffNameEnrichment(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{ResourceID: testutil.ResourceID})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 3)

	require.NotNil(t, resp.Bookings[0].StaffName)
	assert.Equal(t, "Priya", *resp.Bookings[0].StaffName)
	// Неизвестный мастер не ломает список
	assert.Equal(t, "gone", *resp.Bookings[1].StaffID)
	assert.Nil(t, resp.Bookings[1].StaffName)
	assert.Nil(t, resp.Bookings[2].StaffName)
}

func TestGetByID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, testutil.ResourceID, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "Priya", *resp.StaffName)

	_, err = svc.GetByID(ctx, testutil.ResourceID, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(ctx, testutil.ResourceID, "foreign")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetChanges(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"c-1", "c-2"} {
		require.NoError(t, store.Changes().Create(ctx, &domain.BookingChange{
			ID:        id,
			BookingID: "b-1",
			ActorID:   testutil.ActorID,
			NewStatus: ptr.Ptr(domain.StatusConfirmed),
		}))
	}

	resp, err := svc.GetChanges(ctx, testutil.ResourceID, "b-1")
	require.NoError(t, err)
	require.Len(t, resp.Changes, 2)
	assert.Equal(t, "c-2", resp.Changes[0].ID)
	assert.Equal(t, "confirmed", *resp.Changes[0].NewStatus)

	resp, err = svc.GetChanges(ctx, testutil.ResourceID, "b-3")
	require.NoError(t, err)
	assert.Empty(t, resp.Changes)

	_, err = svc.GetChanges(ctx, testutil.ResourceID, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGateDisabled(t *testing.T) {
	svc, _, gate := newTestService(t)
	ctx := context.Background()
	require.NoError(t, gate.SetBookingEnabled(ctx, testutil.ResourceID, false))

	_, err := svc.List(ctx, &models.ListBookingsRequest{ResourceID: testutil.ResourceID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetByID(ctx, testutil.ResourceID, "b-1")
	assert.ErrorIs(t, err, ErrBookingDisabled)

	_, err = svc.GetChanges(ctx, testutil.ResourceID, "b-1")
	assert.ErrorIs(t, err, ErrBookingDisabled)
}
