package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w)
	p.now = func() time.Time { return time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC) }

	err := p.Publish(context.Background(), &domain.Notification{
		Event:     domain.EventConfirmed,
		BookingID: "b-1",
		Target:    "919876543210",
		Message:   "Hi Asha",
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "b-1", string(msg.Key))
	assert.Equal(t, "event", msg.Headers[0].Key)
	assert.Equal(t, "confirmed", string(msg.Headers[0].Value))

	var body message
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "confirmed", body.Event)
	assert.Equal(t, "https://wa.me/919876543210?text=Hi+Asha", body.Link)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := newKafkaPublisher(&fakeWriter{err: errors.New("leader not available")})

	err := p.Publish(context.Background(), &domain.Notification{Event: domain.EventCancelled, BookingID: "b-1"})
	assert.ErrorIs(t, err, ErrPublish)
}
