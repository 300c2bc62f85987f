package featureflags

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrStore ошибка хранилища флагов
var ErrStore = errors.New("featureflags: store error")

const bookingFlag = "booking_calendar_enabled"

// Static флаги в памяти процесса. Значение сбрасывается к defaultEnabled при перезапуске
type Static struct {
	mu             sync.RWMutex
	enabled        map[string]bool
	defaultEnabled bool
}

// NewStatic создает хранилище флагов в памяти
func NewStatic(defaultEnabled bool) *Static {
	return &Static{
		enabled:        make(map[string]bool),
		defaultEnabled: defaultEnabled,
	}
}

func (s *Static) IsBookingEnabled(_ context.Context, resourceID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.enabled[resourceID]; ok {
		return v, nil
	}
	return s.defaultEnabled, nil
}

func (s *Static) SetBookingEnabled(_ context.Context, resourceID string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled[resourceID] = enabled
	return nil
}

// Redis флаги в Redis, общие для всех экземпляров сервиса.
// Ключ: features:<resource>:booking_calendar_enabled
type Redis struct {
	client         redis.Cmdable
	defaultEnabled bool
}

// NewRedis создает хранилище флагов поверх клиента Redis
func NewRedis(client redis.Cmdable, defaultEnabled bool) *Redis {
	return &Redis{
		client:         client,
		defaultEnabled: defaultEnabled,
	}
}

func (r *Redis) IsBookingEnabled(ctx context.Context, resourceID string) (bool, error) {
	val, err := r.client.Get(ctx, key(resourceID)).Result()
	if errors.Is(err, redis.Nil) {
		return r.defaultEnabled, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrStore, key(resourceID), err)
	}

	enabled, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%w: malformed value %q: %v", ErrStore, val, err)
	}
	return enabled, nil
}

func (r *Redis) SetBookingEnabled(ctx context.Context, resourceID string, enabled bool) error {
	if err := r.client.Set(ctx, key(resourceID), strconv.FormatBool(enabled), 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStore, key(resourceID), err)
	}
	return nil
}

func key(resourceID string) string {
	return "features:" + resourceID + ":" + bookingFlag
}
