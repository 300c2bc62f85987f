package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/internal/services/haircut", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"haircut","name":"Haircut","duration_minutes":45,"price":500,"is_active":true}`))
	})
	mux.HandleFunc("/internal/services/broken", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	})
	mux.HandleFunc("/internal/services/flaky", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream timeout", http.StatusBadGateway)
	})
	mux.HandleFunc("/internal/staff/priya", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"priya","name":"Priya"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetService(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/", time.Second, logger.NewNop())
	ctx := context.Background()

	svc, err := c.GetService(ctx, "haircut")
	require.NoError(t, err)
	assert.Equal(t, "Haircut", svc.Name)
	assert.Equal(t, 45*time.Minute, svc.Duration())
	assert.True(t, svc.Active)

	_, err = c.GetService(ctx, "missing")
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.GetService(ctx, "broken")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = c.GetService(ctx, "flaky")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetStaff(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, time.Second, logger.NewNop())

	staff, err := c.GetStaff(context.Background(), "priya")
	require.NoError(t, err)
	assert.Equal(t, "Priya", staff.Name)

	_, err = c.GetStaff(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestClient_Unreachable(t *testing.T) {
	srv := newTestServer(t)
	srv.Close()

	_, err := NewClient(srv.URL, time.Second, logger.NewNop()).GetService(context.Background(), "haircut")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestStatic(t *testing.T) {
	c := NewStatic(
		[]domain.Service{{ID: "haircut", Name: "Haircut", DurationMinutes: 45, Active: true}},
		[]domain.Staff{{ID: "priya", Name: "Priya"}},
	)

	svc, err := c.GetService(context.Background(), "haircut")
	require.NoError(t, err)
	assert.Equal(t, 45, svc.DurationMinutes)

	_, err = c.GetStaff(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
