package get_next_available

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/testutil"
	getSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	getNextAvailable "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_next_available"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func newHandler(t *testing.T, enabled bool) *Handler {
	t.Helper()

	store := memory.NewStore()
	testutil.SeedSchedule(t, store)
	gate := testutil.NewGate(enabled)
	clock := testutil.NewClock(testutil.At(testutil.Monday, 19, 0))

	slots := getSlots.NewUseCase(store.Bookings(), store.Schedules(), testutil.NewCatalog(), gate, logger.NewNop()).
		WithTimeProvider(clock)
	uc := getNextAvailable.NewUseCase(slots, store.Schedules(), gate, logger.NewNop()).WithTimeProvider(clock)

	return NewHandler(uc, testutil.ResourceID, logger.NewNop())
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public/availability/next"+query, nil))
	return rec
}

func TestHandle_NextSlots(t *testing.T) {
	rec := get(newHandler(t, true), "?serviceId=haircut&limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp NextAvailableResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "haircut", resp.ServiceID)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "19:30", resp.Slots[0].DisplayTime)
	assert.True(t, resp.Slots[1].StartTime.Equal(testutil.At(testutil.Monday.AddDate(0, 0, 1), 10, 0)))
}

func TestHandle_Errors(t *testing.T) {
	h := newHandler(t, true)

	assert.Equal(t, http.StatusBadRequest, get(h, "").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "?serviceId=haircut&limit=two").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "?serviceId=massage").Code)
	assert.Equal(t, http.StatusForbidden, get(newHandler(t, false), "?serviceId=haircut").Code)
}
