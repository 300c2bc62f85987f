package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
)

// Store хранилище в памяти: бронирования, журнал изменений и конфигурации.
// Транзакции выполняются строго по одной (writer). Записи внутри транзакции
// попадают в журнал отмены, при ошибке откатываются только они
type Store struct {
	writer sync.Mutex
	mu     sync.RWMutex

	bookings map[string]*domain.Booking
	changes  []*domain.BookingChange
	configs  map[string]*domain.ScheduleConfig

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings: make(map[string]*domain.Booking),
		configs:  make(map[string]*domain.ScheduleConfig),
		now:      time.Now,
	}
}

// journal операции отмены записей одной транзакции
type journal struct {
	undo []func()
}

type txKey struct{}

func journalFrom(ctx context.Context) *journal {
	j, _ := ctx.Value(txKey{}).(*journal)
	return j
}

func inTx(ctx context.Context) bool {
	return journalFrom(ctx) != nil
}

// record запоминает отмену записи, если она сделана в транзакции.
// Вызывается под s.mu
func record(ctx context.Context, undo func()) {
	if j := journalFrom(ctx); j != nil {
		j.undo = append(j.undo, undo)
	}
}

// rollback отменяет записи транзакции в обратном порядке
func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
}

// TxManager менеджер транзакций хранилища
type TxManager struct {
	s *Store
}

// TxManager возвращает менеджер транзакций
func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

// Do выполняет fn в транзакции. Вложенный вызов переиспользует внешнюю
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	m.s.writer.Lock()
	defer m.s.writer.Unlock()

	j := &journal{}
	defer func() {
		if p := recover(); p != nil {
			m.s.rollback(j)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, j)); err != nil {
		m.s.rollback(j)
		return err
	}
	return nil
}

// BookingRepository бронирования в памяти
type BookingRepository struct {
	s *Store
}

// Bookings возвращает репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := booking.ID
	prev, existed := r.s.bookings[id]
	record(ctx, func() {
		if existed {
			r.s.bookings[id] = prev
			return
		}
		delete(r.s.bookings, id)
	})

	now := r.s.now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.s.bookings[id] = booking.Clone()

	return booking, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b.Clone(), nil
}

func (r *BookingRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.ResourceID != filter.ResourceID {
			continue
		}
		if filter.From != nil && b.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartTime.Before(*filter.To) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b.Clone())
	}

	sortByStart(result)
	return result, nil
}

func (r *BookingRepository) GetActiveOverlapping(
	_ context.Context,
	resourceID string,
	start, end time.Time,
	excludeID *string,
) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.ResourceID != resourceID || !b.HoldsCapacity() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.Overlaps(start, end) {
			result = append(result, b.Clone())
		}
	}

	sortByStart(result)
	return result, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.bookings[booking.ID]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	prev := stored.Clone()
	record(ctx, func() { r.s.bookings[prev.ID] = prev })

	stored.Status = booking.Status
	stored.StaffID = booking.Clone().StaffID
	stored.StartTime = booking.StartTime
	stored.EndTime = booking.EndTime
	stored.UpdatedAt = r.s.now()

	booking.UpdatedAt = stored.UpdatedAt
	return booking, nil
}

// LockResource в памяти все транзакции уже сериализованы, достаточно проверить, что она открыта
func (r *BookingRepository) LockResource(ctx context.Context, _ string) error {
	if !inTx(ctx) {
		return bookingRepo.ErrNoTransaction
	}
	return nil
}

// ChangeRepository журнал изменений в памяти
type ChangeRepository struct {
	s *Store
}

// Changes возвращает репозиторий журнала изменений
func (s *Store) Changes() *ChangeRepository {
	return &ChangeRepository{s: s}
}

func (r *ChangeRepository) Create(ctx context.Context, change *domain.BookingChange) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	change.ChangedAt = r.s.now()
	stored := *change
	r.s.changes = append(r.s.changes, &stored)

	record(ctx, func() {
		for i, c := range r.s.changes {
			if c == &stored {
				r.s.changes = append(r.s.changes[:i], r.s.changes[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (r *ChangeRepository) GetByBookingID(_ context.Context, bookingID string) ([]*domain.BookingChange, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.BookingChange, 0)
	for i := len(r.s.changes) - 1; i >= 0; i-- {
		if r.s.changes[i].BookingID == bookingID {
			c := *r.s.changes[i]
			result = append(result, &c)
		}
	}
	return result, nil
}

// ScheduleRepository конфигурации расписания в памяти
type ScheduleRepository struct {
	s *Store
}

// Schedules возвращает репозиторий конфигураций
func (s *Store) Schedules() *ScheduleRepository {
	return &ScheduleRepository{s: s}
}

func (r *ScheduleRepository) GetConfig(_ context.Context, resourceID string) (*domain.ScheduleConfig, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cfg, ok := r.s.configs[resourceID]
	if !ok {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return cloneConfig(cfg), nil
}

func (r *ScheduleRepository) Upsert(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := cfg.ResourceID
	prev, existed := r.s.configs[id]
	record(ctx, func() {
		if existed {
			r.s.configs[id] = prev
			return
		}
		delete(r.s.configs, id)
	})

	cfg.UpdatedAt = r.s.now()
	r.s.configs[cfg.ResourceID] = cloneConfig(cfg)
	return cfg, nil
}

func cloneConfig(cfg *domain.ScheduleConfig) *domain.ScheduleConfig {
	c := *cfg
	c.WorkingHours = append([]domain.WorkingHours(nil), cfg.WorkingHours...)
	return &c
}

func sortByStart(bookings []*domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].StartTime.Equal(bookings[j].StartTime) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})
}
