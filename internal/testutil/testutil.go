// Package testutil общие фикстуры для тестов use case, сервисов и обработчиков
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/catalog"
)

const (
	ResourceID   = "glow-studio"
	ResourceName = "Glow Studio"
	ContactPhone = "+91 88798 78493"
	Timezone     = "Asia/Kolkata"
	ClientPhone  = "98765 43210"
	ActorID      = "manager-1"
)

// Идентификаторы услуг и сотрудников тестового каталога
const (
	ServiceHaircut = "haircut"  // 30 минут, 500
	ServiceColor   = "color"    // 60 минут, 1500
	ServiceBlowDry = "blow-dry" // 30 минут, 300
	ServiceRetired = "retired"  // неактивна

	StaffPriya = "priya"
	StaffArjun = "arjun"
)

// IST часовой пояс тестового салона
var IST = mustLoad(Timezone)

// Monday понедельник 6 января 2025, 08:00 по времени салона (до открытия)
var Monday = time.Date(2025, 1, 6, 8, 0, 0, 0, IST)

// At время на дату date в часовом поясе салона
func At(date time.Time, hour, minute int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, IST)
}

// Clock управляемый источник времени
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock создает часы, остановленные на now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set переводит часы
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// NewCatalog каталог из трёх активных услуг, одной неактивной и двух сотрудников
func NewCatalog() *catalog.Static {
	return catalog.NewStatic(
		[]domain.Service{
			{ID: ServiceHaircut, Name: "Haircut", DurationMinutes: 30, Price: 500, Active: true},
			{ID: ServiceColor, Name: "Hair Color", DurationMinutes: 60, Price: 1500, Active: true},
			{ID: ServiceBlowDry, Name: "Blow Dry", DurationMinutes: 30, Price: 300, Active: true},
			{ID: ServiceRetired, Name: "Perm", DurationMinutes: 90, Price: 2500, Active: false},
		},
		[]domain.Staff{
			{ID: StaffPriya, Name: "Priya"},
			{ID: StaffArjun, Name: "Arjun"},
		},
	)
}

// ScheduleConfig конфигурация салона: шаг 30 минут, одно место, без записей о рабочих днях
// (каждый день 10:00-20:00)
func ScheduleConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ResourceID:      ResourceID,
		ResourceName:    ResourceName,
		ContactPhone:    ContactPhone,
		SlotStepMinutes: 30,
		TotalSeats:      1,
		Timezone:        Timezone,
	}
}

// SeedSchedule сохраняет конфигурацию в хранилище. mutate позволяет поменять поля до сохранения
func SeedSchedule(t *testing.T, store *memory.Store, mutate ...func(cfg *domain.ScheduleConfig)) *domain.ScheduleConfig {
	t.Helper()

	cfg := ScheduleConfig()
	for _, fn := range mutate {
		fn(cfg)
	}

	saved, err := store.Schedules().Upsert(context.Background(), cfg)
	require.NoError(t, err)
	return saved
}

// Gate переключатель записи
type Gate struct {
	mu      sync.Mutex
	enabled bool
}

// NewGate создает переключатель в состоянии enabled
func NewGate(enabled bool) *Gate {
	return &Gate{enabled: enabled}
}

func (g *Gate) IsBookingEnabled(context.Context, string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabled, nil
}

func (g *Gate) SetBookingEnabled(_ context.Context, _ string, enabled bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enabled = enabled
	return nil
}

// Relay запоминает отправленные уведомления
type Relay struct {
	mu   sync.Mutex
	Sent []*domain.Notification
}

func (r *Relay) Send(_ context.Context, n *domain.Notification) {
	if n == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sent = append(r.Sent, n)
}

// Events события отправленных уведомлений по порядку
func (r *Relay) Events() []domain.NotificationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]domain.NotificationEvent, 0, len(r.Sent))
	for _, n := range r.Sent {
		events = append(events, n.Event)
	}
	return events
}

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
