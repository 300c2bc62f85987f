package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// UseCase перенос бронирования на другое время
type UseCase struct {
	bookingRepo  BookingRepository
	changeRepo   ChangeRepository
	scheduleRepo ScheduleRepository
	staff        StaffDirectory
	gate         FeatureGate
	txManager    TransactionManager
	transitions  domain.TransitionTable
	guard        *scheduling.ConflictGuard
	composer     NotificationComposer
	relay        NotificationRelay
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	changeRepo ChangeRepository,
	scheduleRepo ScheduleRepository,
	staff StaffDirectory,
	gate FeatureGate,
	txManager TransactionManager,
	transitions domain.TransitionTable,
	composer NotificationComposer,
	relay NotificationRelay,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		changeRepo:   changeRepo,
		scheduleRepo: scheduleRepo,
		staff:        staff,
		gate:         gate,
		txManager:    txManager,
		transitions:  transitions,
		guard:        scheduling.NewConflictGuard(bookingRepo, scheduleRepo),
		composer:     composer,
		relay:        relay,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переносит запись с сохранением длительности и переводит её в confirmed.
// Старое окно освобождается и новое занимается в одной транзакции:
// при проверке мест сама запись не учитывается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%s, newStart=%s, actor=%s",
		req.BookingID, req.NewStartTime.Format(time.RFC3339), req.ActorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что запись включена
	enabled, err := uc.gate.IsBookingEnabled(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to read feature gate: %v", err)
		return nil, fmt.Errorf("%w: failed to read feature gate: %v", ErrInternal, err)
	}
	if !enabled {
		return nil, ErrBookingDisabled
	}

	// 3. Новое время должно быть в будущем, даже если окно свободно
	now := uc.timeProvider.Now()
	if !req.NewStartTime.After(now) {
		uc.logger.Warn("RescheduleBooking: newStart=%s is not after now=%s",
			req.NewStartTime.Format(time.RFC3339), now.Format(time.RFC3339))
		return nil, ErrStartInPast
	}

	// 4. Проверяем сотрудника
	var assigned *domain.Staff
	if req.StaffID != nil {
		staff, err := uc.staff.GetStaff(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get staff id=%s: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		assigned = staff
	}

	var (
		booking       *domain.Booking
		previousStart time.Time
	)

	// 5. Проверка мест, перенос и запись в журнал в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockResource(txCtx, req.ResourceID); err != nil {
			uc.logger.Error("RescheduleBooking: failed to lock resource=%s: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to lock resource: %v", ErrInternal, err)
		}

		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if current.ResourceID != req.ResourceID {
			return ErrBookingNotFound
		}

		if !uc.transitions.Allows(current.Status, domain.StatusConfirmed) {
			return fmt.Errorf("%w: %s", ErrTransitionNotAllowed, current.Status)
		}

		duration := current.Duration()
		newStart := req.NewStartTime
		newEnd := newStart.Add(duration)

		available, eval, err := uc.guard.IsAvailable(txCtx, current.ResourceID, newStart, newEnd, &current.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("RescheduleBooking: no schedule config for resource=%s", current.ResourceID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("RescheduleBooking: conflict guard failed: %v", err)
			return fmt.Errorf("%w: conflict guard: %v", ErrInternal, err)
		}
		if !available {
			uc.logger.Warn("RescheduleBooking: slot not available for booking id=%s, %d seats taken",
				current.ID, eval.OverlapCount)
			return ErrSlotNotAvailable
		}

		change := &domain.BookingChange{
			ID:           uuid.NewString(),
			BookingID:    current.ID,
			ResourceID:   current.ResourceID,
			ActorID:      req.ActorID,
			OldStartTime: ptr.Ptr(current.StartTime),
			NewStartTime: ptr.Ptr(newStart),
			OldStaffID:   current.StaffID,
			OldStatus:    ptr.Ptr(current.Status),
			NewStatus:    ptr.Ptr(domain.StatusConfirmed),
			Reason:       strings.TrimSpace(req.Reason),
		}

		previousStart = current.StartTime
		current.StartTime = newStart
		current.EndTime = newEnd
		current.Status = domain.StatusConfirmed
		if req.StaffID != nil {
			current.StaffID = ptr.Ptr(*req.StaffID)
		}
		change.NewStaffID = current.StaffID

		updated, err := uc.bookingRepo.Update(txCtx, current)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to update booking id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		if err := uc.changeRepo.Create(txCtx, change); err != nil {
			uc.logger.Error("RescheduleBooking: failed to record change for booking id=%s: %v", updated.ID, err)
			return fmt.Errorf("%w: failed to record change: %v", ErrInternal, err)
		}

		booking = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.BookingConflict("reschedule")
		}
		return nil, err
	}

	uc.metrics.BookingRescheduled()
	uc.logger.Info("RescheduleBooking: booking id=%s moved from %s to %s",
		booking.ID, previousStart.Format(time.RFC3339), booking.StartTime.Format(time.RFC3339))

	// 6. Уведомление клиенту с прежним и новым временем
	response := &Response{
		Booking:   booking,
		StaffName: uc.staffName(ctx, booking.StaffID, assigned),
	}
	cfg, err := uc.scheduleRepo.GetConfig(ctx, booking.ResourceID)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: no schedule config for notification, booking id=%s: %v", booking.ID, err)
		return response, nil
	}

	n, err := uc.composer.Compose(cfg, booking, domain.EventRescheduled, &previousStart)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: cannot compose notification for booking id=%s: %v", booking.ID, err)
		return response, nil
	}

	response.Notification = n
	uc.relay.Send(ctx, n)

	return response, nil
}

// staffName имя назначенного мастера для ответа. Ошибки справочника не
// влияют на результат уже зафиксированного изменения
func (uc *UseCase) staffName(ctx context.Context, staffID *string, assigned *domain.Staff) *string {
	if staffID == nil {
		return nil
	}
	if assigned != nil && assigned.ID == *staffID {
		return ptr.Ptr(assigned.Name)
	}

	staff, err := uc.staff.GetStaff(ctx, *staffID)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: cannot resolve staff name for id=%s: %v", *staffID, err)
		return nil
	}
	return ptr.Ptr(staff.Name)
}
