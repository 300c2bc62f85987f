package get_features

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/features/models"
)

type FeatureService interface {
	Get(ctx context.Context, resourceID string) (*models.FeaturesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
