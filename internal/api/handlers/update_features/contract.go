package update_features

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/features/models"
)

type FeatureService interface {
	Update(ctx context.Context, resourceID string, req *models.UpdateFeaturesRequest) (*models.FeaturesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
