package get_next_available

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// UseCase поиск ближайших свободных слотов вперёд по дням
type UseCase struct {
	slots        SlotLister
	scheduleRepo ScheduleRepository
	gate         FeatureGate
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slots SlotLister, scheduleRepo ScheduleRepository, gate FeatureGate, logger Logger) *UseCase {
	return &UseCase{
		slots:        slots,
		scheduleRepo: scheduleRepo,
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

// Execute просматривает дни начиная с сегодняшнего (в часовом поясе ресурса) в пределах
// NextAvailableHorizonDays и останавливается, как только набрано limit слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.ResourceID) == "" || strings.TrimSpace(req.ServiceID) == "" {
		return nil, fmt.Errorf("%w: resourceID and serviceID are required", ErrInvalidInput)
	}

	limit := normalizeLimit(req.Limit)
	uc.logger.Info("GetNextAvailable: resource=%s, service=%s, limit=%d", req.ResourceID, req.ServiceID, limit)

	enabled, err := uc.gate.IsBookingEnabled(ctx, req.ResourceID)
	if err != nil {
		uc.logger.Error("GetNextAvailable: failed to read feature gate: %v", err)
		return nil, fmt.Errorf("%w: failed to read feature gate: %v", ErrInternal, err)
	}
	if !enabled {
		return nil, ErrBookingDisabled
	}

	cfg, err := uc.scheduleRepo.GetConfig(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetNextAvailable: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	today := uc.timeProvider.Now().In(loc)
	y, m, d := today.Date()

	collected := make([]domain.Slot, 0, limit)
	for day := 0; day < domain.NextAvailableHorizonDays && len(collected) < limit; day++ {
		date := time.Date(y, m, d+day, 0, 0, 0, 0, loc)

		resp, err := uc.slots.Execute(ctx, &getSlots.Request{
			ResourceID: req.ResourceID,
			ServiceID:  req.ServiceID,
			Date:       date,
		})
		if err != nil {
			return nil, err
		}
		collected = append(collected, resp.Slots...)
	}

	if len(collected) > limit {
		collected = collected[:limit]
	}

	uc.logger.Info("GetNextAvailable: found %d slots for resource=%s, service=%s",
		len(collected), req.ResourceID, req.ServiceID)

	return &Response{ServiceID: req.ServiceID, Slots: collected}, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return domain.DefaultNextAvailableLimit
	}
	if limit > domain.MaxNextAvailableLimit {
		return domain.MaxNextAvailableLimit
	}
	return limit
}
