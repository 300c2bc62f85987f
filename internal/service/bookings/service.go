package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Service сервис чтения бронирований салона и их истории
type Service struct {
	bookingRepo  BookingRepository
	changeRepo   ChangeRepository
	scheduleRepo ScheduleRepository
	staff        StaffDirectory
	gate         FeatureGate
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	changeRepo ChangeRepository,
	scheduleRepo ScheduleRepository,
	staff StaffDirectory,
	gate FeatureGate,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		changeRepo:   changeRepo,
		scheduleRepo: scheduleRepo,
		staff:        staff,
		gate:         gate,
		logger:       logger,
	}
}

// List получает бронирования салона с фильтрацией по периоду и статусу.
// Даты периода интерпретируются в часовом поясе салона, обе границы включительно
//
// Примеры использования:
// - Все бронирования: List(ctx, &ListBookingsRequest{ResourceID: "glow-studio"})
// - Бронирования на дату: FromDate и ToDate указывают на одну дату
// - Только подтверждённые: Status = "confirmed"
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching bookings for resource=%s", req.ResourceID)
	if req.FromDate != nil {
		logMsg += fmt.Sprintf(", from=%s", *req.FromDate)
	}
	if req.ToDate != nil {
		logMsg += fmt.Sprintf(", to=%s", *req.ToDate)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if err := s.checkEnabled(ctx, req.ResourceID); err != nil {
		return nil, err
	}

	filter, err := s.toDomainFilter(ctx, req)
	if err != nil {
		s.logger.Warn("List: invalid filter for resource=%s: %v", req.ResourceID, err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBookingList(bookings)
	names := make(map[string]*string)
	for i := range resp.Bookings {
		resp.Bookings[i].StaffName = s.staffName(ctx, resp.Bookings[i].StaffID, names)
	}

	s.logger.Info("List: successfully fetched %d bookings for resource=%s", resp.Total, req.ResourceID)
	return resp, nil
}

// GetByID получает бронирование салона по ID.
// Бронирование другого салона считается ненайденным
func (s *Service) GetByID(ctx context.Context, resourceID, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for resource=%s", id, resourceID)

	if err := s.checkEnabled(ctx, resourceID); err != nil {
		return nil, err
	}

	booking, err := s.getBooking(ctx, resourceID, id)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainBooking(booking)
	resp.StaffName = s.staffName(ctx, resp.StaffID, nil)

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return resp, nil
}

// GetChanges получает журнал изменений бронирования, новые записи первыми
func (s *Service) GetChanges(ctx context.Context, resourceID, id string) (*models.ChangeListResponse, error) {
	s.logger.Info("GetChanges: fetching history of booking id=%s", id)

	if err := s.checkEnabled(ctx, resourceID); err != nil {
		return nil, err
	}

	if _, err := s.getBooking(ctx, resourceID, id); err != nil {
		return nil, err
	}

	changes, err := s.changeRepo.GetByBookingID(ctx, id)
	if err != nil {
		s.logger.Error("GetChanges: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetChanges - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetChanges: successfully fetched %d changes for booking id=%s", len(changes), id)
	return models.FromDomainChangeList(changes), nil
}

// Вспомогательные методы

func (s *Service) checkEnabled(ctx context.Context, resourceID string) error {
	enabled, err := s.gate.IsBookingEnabled(ctx, resourceID)
	if err != nil {
		s.logger.Error("checkEnabled: failed to read feature gate for resource=%s: %v", resourceID, err)
		return fmt.Errorf("%w: failed to read feature gate: %v", ErrInternal, err)
	}
	if !enabled {
		s.logger.Warn("checkEnabled: booking is disabled for resource=%s", resourceID)
		return ErrBookingDisabled
	}
	return nil
}

func (s *Service) getBooking(ctx context.Context, resourceID, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("getBooking: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: getBooking - repository error: %v", ErrInternal, err)
	}

	if booking.ResourceID != resourceID {
		s.logger.Warn("getBooking: booking id=%s belongs to resource=%s, not %s", id, booking.ResourceID, resourceID)
		return nil, ErrBookingNotFound
	}

	return booking, nil
}

// staffName имя мастера для отображения. Ошибки справочника не прерывают чтение,
// поле просто остаётся пустым. cache может быть nil
func (s *Service) staffName(ctx context.Context, staffID *string, cache map[string]*string) *string {
	if staffID == nil {
		return nil
	}
	if name, ok := cache[*staffID]; ok {
		return name
	}

	var name *string
	staff, err := s.staff.GetStaff(ctx, *staffID)
	switch {
	case err == nil:
		name = &staff.Name
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Warn("staffName: staff id=%s not found", *staffID)
	default:
		s.logger.Error("staffName: failed to get staff id=%s: %v", *staffID, err)
	}

	if cache != nil {
		cache[*staffID] = name
	}
	return name
}

// toDomainFilter конвертирует request в domain фильтр
func (s *Service) toDomainFilter(ctx context.Context, req *models.ListBookingsRequest) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{ResourceID: req.ResourceID}

	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	if req.FromDate == nil && req.ToDate == nil {
		return filter, nil
	}

	loc, err := s.location(ctx, req.ResourceID)
	if err != nil {
		return filter, err
	}

	if req.FromDate != nil {
		from, err := time.ParseInLocation(domain.DateFormat, *req.FromDate, loc)
		if err != nil {
			return filter, fmt.Errorf("%w: from_date must be YYYY-MM-DD", ErrInvalidInput)
		}
		filter.From = &from
	}

	if req.ToDate != nil {
		to, err := time.ParseInLocation(domain.DateFormat, *req.ToDate, loc)
		if err != nil {
			return filter, fmt.Errorf("%w: to_date must be YYYY-MM-DD", ErrInvalidInput)
		}
		// Граница включительно: до начала следующего дня
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return filter, ErrInvalidTimeRange
	}

	return filter, nil
}

// location часовой пояс салона. Без конфигурации используется часовой пояс по умолчанию
func (s *Service) location(ctx context.Context, resourceID string) (*time.Location, error) {
	cfg, err := s.scheduleRepo.GetConfig(ctx, resourceID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("location: failed to get schedule config for resource=%s: %v", resourceID, err)
			return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}
		cfg = domain.NewDefaultScheduleConfig(resourceID)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return loc, nil
}
