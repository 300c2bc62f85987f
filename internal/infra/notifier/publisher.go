package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ErrPublish ошибка отправки уведомления в брокер
var ErrPublish = errors.New("notifier: publish failed")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// message формат сообщения в топике уведомлений
type message struct {
	Event     string    `json:"event"`
	BookingID string    `json:"bookingId"`
	Target    string    `json:"target"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"createdAt"`
}

// KafkaPublisher отправляет уведомления в Kafka. Ключ сообщения id записи,
// поэтому события одной записи попадают в одну партицию по порядку
type KafkaPublisher struct {
	writer messageWriter
	now    func() time.Time
}

// NewKafkaPublisher создает publisher для топика
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: writeTimeout,
	})
}

func newKafkaPublisher(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, now: time.Now}
}

// Publish синхронно пишет уведомление в топик
func (p *KafkaPublisher) Publish(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(message{
		Event:     string(n.Event),
		BookingID: n.BookingID,
		Target:    n.Target,
		Message:   n.Message,
		Link:      n.Link(),
		CreatedAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.BookingID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(n.Event)},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %s for booking %s: %v", ErrPublish, n.Event, n.BookingID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Noop отбрасывает уведомления. Используется, когда Kafka не настроена
type Noop struct{}

func (Noop) Publish(context.Context, *domain.Notification) error { return nil }

func (Noop) Close() error { return nil }
