package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/notification"
	"github.com/m04kA/SMC-SalonBooking/internal/scheduling"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// UseCase смена статуса бронирования
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
		logger:       logger,
	}
}

// Execute меняет статус (и при необходимости мастера) и пишет одну запись в журнал.
// Возврат отменённой записи в статус, занимающий место, повторно проверяет вместимость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%s, status=%s, actor=%s", req.BookingID, req.Status, req.ActorID)

	// 1. Валидация входных данных
	if strings.TrimSpace(req.BookingID) == "" || strings.TrimSpace(req.ActorID) == "" {
		return nil, fmt.Errorf("%w: bookingID and actorID are required", ErrInvalidInput)
	}

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: invalid status=%q", req.Status)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	// 2. Проверяем, что запись включена
	enabled, err := uc.gate.IsBookingEnabled(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to read feature gate: %v", err)
		return nil, fmt.Errorf("%w: failed to read feature gate: %v", ErrInternal, err)
	}
	if !enabled {
		return nil, ErrBookingDisabled
	}

	// 3. Проверяем сотрудника
	var assigned *domain.Staff
	if req.StaffID != nil {
		assigned, err = uc.staff.GetStaff(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("UpdateBookingStatus: staff id=%s not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get staff id=%s: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
	}

	var (
		booking   *domain.Booking
		oldStatus domain.BookingStatus
	)

	// 4. Изменение и запись в журнал в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockResource(txCtx, req.ResourceID); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to lock resource=%s: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to lock resource: %v", ErrInternal, err)
		}

		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if current.ResourceID != req.ResourceID {
			return ErrBookingNotFound
		}

		oldStatus = current.Status
		if !uc.transitions.Allows(oldStatus, newStatus) {
			uc.logger.Warn("UpdateBookingStatus: transition %s -> %s not allowed for booking id=%s",
				oldStatus, newStatus, current.ID)
			return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, oldStatus, newStatus)
		}

		// Отменённая запись снова занимает место только если оно свободно
		if !oldStatus.HoldsCapacity() && newStatus.HoldsCapacity() {
			available, eval, err := uc.guard.IsAvailable(txCtx, current.ResourceID, current.StartTime, current.EndTime, &current.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					uc.logger.Warn("UpdateBookingStatus: no schedule config for resource=%s", current.ResourceID)
					return ErrScheduleNotFound
				}
				uc.logger.Error("UpdateBookingStatus: conflict guard failed: %v", err)
				return fmt.Errorf("%w: conflict guard: %v", ErrInternal, err)
			}
			if !available {
				uc.logger.Warn("UpdateBookingStatus: cannot restore booking id=%s, %d seats taken",
					current.ID, eval.OverlapCount)
				return ErrSlotNotAvailable
			}
		}

		oldStaffID := current.StaffID
		current.Status = newStatus
		if req.StaffID != nil {
			current.StaffID = ptr.Ptr(*req.StaffID)
		}

		updated, err := uc.bookingRepo.Update(txCtx, current)
		if err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to update booking id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		change := &domain.BookingChange{
			ID:         uuid.NewString(),
			BookingID:  updated.ID,
			ResourceID: updated.ResourceID,
			ActorID:    req.ActorID,
			OldStaffID: oldStaffID,
			NewStaffID: updated.StaffID,
			OldStatus:  ptr.Ptr(oldStatus),
			NewStatus:  ptr.Ptr(newStatus),
			Reason:     fmt.Sprintf("status changed from %s to %s", oldStatus, newStatus),
		}
		if err := uc.changeRepo.Create(txCtx, change); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to record change for booking id=%s: %v", updated.ID, err)
			return fmt.Errorf("%w: failed to record change: %v", ErrInternal, err)
		}

		booking = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.BookingConflict("status")
		}
		return nil, err
	}

	uc.metrics.BookingStatusChanged(string(newStatus))
	uc.logger.Info("UpdateBookingStatus: booking id=%s %s -> %s", booking.ID, oldStatus, newStatus)

	// 5. Уведомление клиенту о подтверждении или отмене
	response := &Response{
		Booking:   booking,
		StaffName: uc.staffName(ctx, booking.StaffID, assigned),
	}
	if event, ok := notification.EventForStatus(newStatus); ok {
		response.Notification = uc.compose(ctx, booking, event)
		uc.relay.Send(ctx, response.Notification)
	}

	return response, nil
}

func (uc *UseCase) compose(ctx context.Context, booking *domain.Booking, event domain.NotificationEvent) *domain.Notification {
	cfg, err := uc.scheduleRepo.GetConfig(ctx, booking.ResourceID)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: no schedule config for notification, booking id=%s: %v", booking.ID, err)
		return nil
	}

	n, err := uc.composer.Compose(cfg, booking, event, nil)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: cannot compose %s notification for booking id=%s: %v", event, booking.ID, err)
		return nil
	}
	return n
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
		uc.logger.Warn("UpdateBookingStatus: cannot resolve staff name for id=%s: %v", *staffID, err)
		return nil
	}
	return ptr.Ptr(staff.Name)
}
