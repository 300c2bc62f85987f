package notification

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Publisher канал доставки уведомлений
type Publisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}

// RelayMetrics метрики отправки уведомлений
type RelayMetrics interface {
	NotificationRelayed(event string, ok bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Relay передаёт готовые уведомления во внешний канал.
// Вызывается после фиксации транзакции: ошибка доставки логируется и не влияет на запись
type Relay struct {
	publisher Publisher
	metrics   RelayMetrics
	logger    Logger
}

// NewRelay создает Relay
func NewRelay(publisher Publisher, metrics RelayMetrics, logger Logger) *Relay {
	return &Relay{
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Send отправляет уведомление. nil пропускается
func (r *Relay) Send(ctx context.Context, n *domain.Notification) {
	if n == nil {
		return
	}

	if err := r.publisher.Publish(ctx, n); err != nil {
		r.logger.Error("Relay: failed to publish %s notification for booking=%s: %v", n.Event, n.BookingID, err)
		r.metrics.NotificationRelayed(string(n.Event), false)
		return
	}

	r.metrics.NotificationRelayed(string(n.Event), true)
	r.logger.Info("Relay: %s notification for booking=%s published", n.Event, n.BookingID)
}
