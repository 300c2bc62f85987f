package features

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/service/features/models"
)

// Service сервис переключателей салона
type Service struct {
	store  FeatureStore
	logger Logger
}

// NewService создает новый экземпляр сервиса переключателей
func NewService(store FeatureStore, logger Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Get возвращает текущее состояние переключателей
func (s *Service) Get(ctx context.Context, resourceID string) (*models.FeaturesResponse, error) {
	enabled, err := s.store.IsBookingEnabled(ctx, resourceID)
	if err != nil {
		s.logger.Error("Get: failed to read features for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: Get - feature store error: %v", ErrInternal, err)
	}

	return &models.FeaturesResponse{BookingCalendarEnabled: enabled}, nil
}

// Update меняет переключатели и возвращает итоговое состояние
func (s *Service) Update(ctx context.Context, resourceID string, req *models.UpdateFeaturesRequest) (*models.FeaturesResponse, error) {
	if req == nil || req.BookingCalendarEnabled == nil {
		s.logger.Warn("Update: nothing to update for resource=%s", resourceID)
		return nil, fmt.Errorf("%w: booking_calendar_enabled is required", ErrInvalidInput)
	}

	s.logger.Info("Update: setting booking_calendar_enabled=%t for resource=%s", *req.BookingCalendarEnabled, resourceID)

	if err := s.store.SetBookingEnabled(ctx, resourceID, *req.BookingCalendarEnabled); err != nil {
		s.logger.Error("Update: failed to write features for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: Update - feature store error: %v", ErrInternal, err)
	}

	return s.Get(ctx, resourceID)
}
