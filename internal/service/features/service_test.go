package features

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/featureflags"
	"github.com/m04kA/SMC-SalonBooking/internal/service/features/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func TestService_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(featureflags.NewStatic(true), logger.NewNop())

	resp, err := svc.Get(ctx, "salon")
	require.NoError(t, err)
	assert.True(t, resp.BookingCalendarEnabled)

	resp, err = svc.Update(ctx, "salon", &models.UpdateFeaturesRequest{BookingCalendarEnabled: ptr.Ptr(false)})
	require.NoError(t, err)
	assert.False(t, resp.BookingCalendarEnabled)

	// Другой салон не затронут
	resp, err = svc.Get(ctx, "other")
	require.NoError(t, err)
	assert.True(t, resp.BookingCalendarEnabled)
}

func TestService_UpdateRequiresValue(t *testing.T) {
	svc := NewService(featureflags.NewStatic(true), logger.NewNop())

	_, err := svc.Update(context.Background(), "salon", &models.UpdateFeaturesRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
