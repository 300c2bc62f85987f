package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/pkg/phone"
)

const serviceNameSeparator = " + "

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalog      ServiceCatalog
	gate         FeatureGate
	txManager    TransactionManager
	guard        *scheduling.ConflictGuard
	composer     NotificationComposer
	relay        NotificationRelay
	metrics      Metrics
	phoneRegion  string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// phoneRegion регион по умолчанию для номеров клиентов без кода страны
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalog ServiceCatalog,
	gate FeatureGate,
	txManager TransactionManager,
	composer NotificationComposer,
	relay NotificationRelay,
	metrics Metrics,
	phoneRegion string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalog:      catalog,
		gate:         gate,
		txManager:    txManager,
		guard:        scheduling.NewConflictGuard(bookingRepo, scheduleRepo),
		composer:     composer,
		relay:        relay,
		metrics:      metrics,
		phoneRegion:  phoneRegion,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// resolvedServices суммарные данные выбранных услуг
type resolvedServices struct {
	ids      []string
	name     string
	price    float64
	duration time.Duration
}

// Execute выполняет use case создания бронирования.
// Проверка вместимости и запись выполняются в одной транзакции под блокировкой ресурса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: resource=%s, services=%v, start=%s",
		req.ResourceID, req.ServiceIDs, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	clientPhone, err := phone.Normalize(req.ClientPhone, uc.phoneRegion)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid client phone: %v", err)
		return nil, ErrInvalidPhone
	}

	// 2. Проверяем, что запись включена
	enabled, err := uc.gate.IsBookingEnabled(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to read feature gate: %v", err)
		return nil, fmt.Errorf("%w: failed to read feature gate: %v", ErrInternal, err)
	}
	if !enabled {
		uc.logger.Warn("CreateBooking: booking disabled for resource=%s", req.ResourceID)
		return nil, ErrBookingDisabled
	}

	// 3. Получаем услуги: отсутствующие и неактивные пропускаются
	services, err := uc.resolveServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	duration := services.duration
	if req.TotalDurationMinutes != nil {
		duration = time.Duration(*req.TotalDurationMinutes) * time.Minute
	}

	// 4. Время начала должно быть в будущем
	now := uc.timeProvider.Now()
	if !req.StartTime.After(now) {
		uc.logger.Warn("CreateBooking: start=%s is not after now=%s",
			req.StartTime.Format(time.RFC3339), now.Format(time.RFC3339))
		return nil, ErrStartInPast
	}

	booking := &domain.Booking{
		ID:          uuid.NewString(),
		ResourceID:  req.ResourceID,
		ServiceIDs:  services.ids,
		ServiceName: services.name,
		TotalPrice:  services.price,
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientPhone: clientPhone,
		Notes:       req.Notes,
		StartTime:   req.StartTime,
		EndTime:     req.StartTime.Add(duration),
		Status:      domain.StatusPending,
	}

	var cfg *domain.ScheduleConfig

	// 5. Проверка мест и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем ресурс до конца транзакции
		if err := uc.bookingRepo.LockResource(txCtx, req.ResourceID); err != nil {
			uc.logger.Error("CreateBooking: failed to lock resource=%s: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to lock resource: %v", ErrInternal, err)
		}

		// 5.2. Конфигурация расписания
		cfg, err = uc.scheduleRepo.GetConfig(txCtx, req.ResourceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("CreateBooking: schedule config for resource=%s not found", req.ResourceID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("CreateBooking: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}

		// 5.3. Проверяем свободные места в окне
		available, eval, err := uc.guard.IsAvailable(txCtx, req.ResourceID, booking.StartTime, booking.EndTime, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: conflict guard failed: %v", err)
			return fmt.Errorf("%w: conflict guard: %v", ErrInternal, err)
		}
		if !available {
			uc.logger.Warn("CreateBooking: slot not available, %d/%d seats taken",
				eval.OverlapCount, cfg.TotalSeats)
			return ErrSlotNotAvailable
		}

		// 5.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		booking = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.BookingConflict("create")
		}
		return nil, err
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%s", booking.ID)

	// 6. Запрос салону о записи
	response := &Response{Booking: booking}
	if cfg.ContactPhone != "" {
		n, err := uc.composer.Compose(cfg, booking, domain.EventRequested, nil)
		if err != nil {
			uc.logger.Warn("CreateBooking: cannot compose request notification for booking id=%s: %v", booking.ID, err)
		} else {
			response.Notification = n
			uc.relay.Send(ctx, n)
		}
	}

	return response, nil
}

// resolveServices получает услуги из каталога и суммирует длительность и цену
func (uc *UseCase) resolveServices(ctx context.Context, ids []string) (*resolvedServices, error) {
	result := &resolvedServices{}
	names := make([]string, 0, len(ids))

	for _, id := range uniqueIDs(ids) {
		service, err := uc.catalog.GetService(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("CreateBooking: service id=%s not found, skipping", id)
				continue
			}
			uc.logger.Error("CreateBooking: failed to get service id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !service.Active {
			uc.logger.Warn("CreateBooking: service id=%s is inactive, skipping", id)
			continue
		}

		result.ids = append(result.ids, service.ID)
		names = append(names, service.Name)
		result.price += service.Price
		result.duration += service.Duration()
	}

	if len(result.ids) == 0 {
		uc.logger.Warn("CreateBooking: none of services %v resolved", ids)
		return nil, ErrServiceNotFound
	}

	result.name = strings.Join(names, serviceNameSeparator)
	return result, nil
}
