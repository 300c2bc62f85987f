package list_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/internal/testutil"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func newHandler(t *testing.T, enabled bool) *Handler {
	t.Helper()

	store := memory.NewStore()
	testutil.SeedSchedule(t, store)

	for i, day := range []int{0, 0, 1, 3} {
		start := testutil.At(testutil.Monday.AddDate(0, 0, day), 10+i, 0)
		_, err := store.Bookings().Create(context.Background(), &domain.Booking{
			ID:         []string{"a", "b", "c", "d"}[i],
			ResourceID: testutil.ResourceID,
			StartTime:  start,
			EndTime:    start.Add(30 * time.Minute),
			Status:     []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusPending, domain.StatusCancelled}[i],
		})
		require.NoError(t, err)
	}

	svc := bookings.NewService(
		store.Bookings(),
		store.Changes(),
		store.Schedules(),
		testutil.NewCatalog(),
		testutil.NewGate(enabled),
		logger.NewNop(),
	)
	return NewHandler(svc, testutil.ResourceID, logger.NewNop())
}

func list(h *Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/salon/bookings"+query, nil))
	return rec
}

func TestHandle_Filters(t *testing.T) {
	h := newHandler(t, true)

	tests := []struct {
		query   string
		wantIDs []string
	}{
		{"", []string{"a", "b", "c", "d"}},
		{"?from_date=2025-01-06&to_date=2025-01-06", []string{"a", "b"}},
		{"?from_date=2025-01-07", []string{"c", "d"}},
		{"?status=pending", []string{"a", "c"}},
		{"?from_date=2025-01-06&to_date=2025-01-08&status=cancelled", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := list(h, tt.query)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp models.BookingListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

			ids := make([]string, 0, len(resp.Bookings))
			for _, b := range resp.Bookings {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), resp.Total)
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	h := newHandler(t, true)

	assert.Equal(t, http.StatusBadRequest, list(h, "?from_date=06-01-2025").Code)
	assert.Equal(t, http.StatusBadRequest, list(h, "?status=done").Code)
	assert.Equal(t, http.StatusBadRequest, list(h, "?from_date=2025-01-08&to_date=2025-01-06").Code)

	assert.Equal(t, http.StatusForbidden, list(newHandler(t, false), "").Code)
}
