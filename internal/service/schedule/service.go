package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

// farFuture верхняя граница выборки предстоящих записей
var farFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Service сервис конфигурации расписания салона
type Service struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Get получает конфигурацию расписания салона
func (s *Service) Get(ctx context.Context, resourceID string) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule for resource=%s", resourceID)

	cfg, err := s.scheduleRepo.GetConfig(ctx, resourceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Get: schedule for resource=%s not found", resourceID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error for resource=%s: %v", resourceID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// Update частично обновляет конфигурацию расписания.
// Если конфигурации ещё нет, изменения применяются к значениям по умолчанию
func (s *Service) Update(ctx context.Context, resourceID string, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule for resource=%s", resourceID)

	// 1. Валидируем переданные поля
	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	var workingHours []domain.WorkingHours
	if req.WorkingHours != nil {
		hours, err := toWorkingHours(*req.WorkingHours)
		if err != nil {
			s.logger.Warn("Update: invalid working hours: %v", err)
			return nil, err
		}
		workingHours = hours
	}

	// 2. Читаем, проверяем и сохраняем под блокировкой салона,
	// чтобы новые записи не появились между проверкой мест и сохранением
	var saved *domain.ScheduleConfig
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.LockResource(txCtx, resourceID); err != nil {
			s.logger.Error("Update: failed to lock resource=%s: %v", resourceID, err)
			return fmt.Errorf("%w: Update - lock resource: %v", ErrInternal, err)
		}

		cfg, err := s.scheduleRepo.GetConfig(txCtx, resourceID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				s.logger.Error("Update: repository error for resource=%s: %v", resourceID, err)
				return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
			}
			s.logger.Info("Update: no schedule for resource=%s yet, starting from defaults", resourceID)
			cfg = domain.NewDefaultScheduleConfig(resourceID)
		}
		previousSeats := cfg.TotalSeats

		// 3. Применяем только переданные поля
		if req.ResourceName != nil {
			cfg.ResourceName = strings.TrimSpace(*req.ResourceName)
		}
		if req.ContactPhone != nil {
			cfg.ContactPhone = strings.TrimSpace(*req.ContactPhone)
		}
		if req.SlotStepMinutes != nil {
			cfg.SlotStepMinutes = *req.SlotStepMinutes
		}
		if req.TotalSeats != nil {
			cfg.TotalSeats = *req.TotalSeats
		}
		if req.Timezone != nil {
			cfg.Timezone = strings.TrimSpace(*req.Timezone)
		}
		if req.WorkingHours != nil {
			cfg.WorkingHours = workingHours
		}

		// 4. Уменьшение мест не должно оставить предстоящие записи без места
		if cfg.TotalSeats < previousSeats {
			if err := s.checkSeats(txCtx, resourceID, cfg.TotalSeats); err != nil {
				return err
			}
		}

		// 5. Сохраняем
		saved, err = s.scheduleRepo.Upsert(txCtx, cfg)
		if err != nil {
			s.logger.Error("Update: repository error for resource=%s: %v", resourceID, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: schedule for resource=%s saved, step=%d, seats=%d, tz=%s",
		resourceID, saved.SlotStepMinutes, saved.TotalSeats, saved.Timezone)
	return models.FromDomainConfig(saved), nil
}

// checkSeats проверяет, что активные записи, которые ещё не закончились,
// нигде не пересекаются больше чем на seats мест
func (s *Service) checkSeats(ctx context.Context, resourceID string, seats int) error {
	now := s.timeProvider.Now()

	bookings, err := s.bookingRepo.GetActiveOverlapping(ctx, resourceID, now, farFuture, nil)
	if err != nil {
		s.logger.Error("Update: failed to load upcoming bookings for resource=%s: %v", resourceID, err)
		return fmt.Errorf("%w: Update - load bookings: %v", ErrInternal, err)
	}

	if peak := scheduling.PeakConcurrency(bookings); peak > seats {
		s.logger.Warn("Update: resource=%s has %d overlapping active bookings, cannot reduce seats to %d",
			resourceID, peak, seats)
		return fmt.Errorf("%w: %d overlapping bookings, %d seats requested", ErrSeatsBelowBookings, peak, seats)
	}
	return nil
}

// EnsureDefault сохраняет seed, если у салона ещё нет конфигурации.
// Существующая конфигурация не перезаписывается
func (s *Service) EnsureDefault(ctx context.Context, seed *domain.ScheduleConfig) error {
	seeded := false
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		_, err := s.scheduleRepo.GetConfig(txCtx, seed.ResourceID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: EnsureDefault - repository error: %v", ErrInternal, err)
		}

		if _, err := s.scheduleRepo.Upsert(txCtx, seed); err != nil {
			return fmt.Errorf("%w: EnsureDefault - repository error: %v", ErrInternal, err)
		}
		seeded = true
		return nil
	})
	if err != nil {
		return err
	}

	if seeded {
		s.logger.Info("EnsureDefault: seeded schedule for resource=%s", seed.ResourceID)
	}
	return nil
}
