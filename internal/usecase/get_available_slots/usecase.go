package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalog      ServiceCatalog
	gate         FeatureGate
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalog ServiceCatalog,
	gate FeatureGate,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalog:      catalog,
		gate:         gate,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%s, service=%s, date=%s",
		req.ResourceID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что запись включена
	enabled, err := uc.gate.IsBookingEnabled(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to read feature gate: %v", err)
		return nil, fmt.Errorf("%w: failed to read feature gate: %v", ErrInternal, err)
	}
	if !enabled {
		uc.logger.Warn("GetAvailableSlots: booking disabled for resource=%s", req.ResourceID)
		return nil, ErrBookingDisabled
	}

	// 3. Получаем конфигурацию расписания
	cfg, err := uc.scheduleRepo.GetConfig(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule config for resource=%s not found", req.ResourceID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	loc, err := cfg.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: resource=%s has invalid timezone: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 5. Длительность: явно переданная важнее длительности услуги
	duration := service.Duration()
	if req.TotalDurationMinutes != nil {
		duration = time.Duration(*req.TotalDurationMinutes) * time.Minute
	}

	response := &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     []domain.Slot{},
	}

	// 6. Получаем рабочее окно на дату
	window, err := scheduling.ResolveWorkingHours(req.Date, cfg.WorkingHours, loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve working hours: %v", ErrInternal, err)
	}
	if window.Closed {
		uc.logger.Info("GetAvailableSlots: resource=%s is closed on %s", req.ResourceID, req.Date.Format(domain.DateFormat))
		return response, nil
	}

	// 7. Получаем записи, пересекающие рабочее окно
	bookings, err := uc.bookingRepo.GetActiveOverlapping(ctx, req.ResourceID, window.Open, window.Close, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Строим слоты и отбираем свободные
	slots, err := buildSlots(window, duration, cfg, loc, bookings, uc.timeProvider.Now())
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("GetAvailableSlots: cannot generate slots: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	response.Slots = slots

	uc.logger.Info("GetAvailableSlots: %d slots for resource=%s, service=%s, date=%s",
		len(slots), req.ResourceID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return response, nil
}
