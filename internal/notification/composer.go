package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/phone"
)

const (
	dateLayout = "Mon, 02 Jan 2006"
	timeLayout = "3:04 PM"

	fallbackSalonName = "the salon"
)

var (
	// ErrNoTarget у получателя нет корректного номера телефона
	ErrNoTarget = errors.New("notification: recipient phone is missing or invalid")

	// ErrUnsupportedEvent событие не предполагает уведомления
	ErrUnsupportedEvent = errors.New("notification: unsupported event")

	// ErrMissingPreviousStart для переноса нужно прежнее время записи
	ErrMissingPreviousStart = errors.New("notification: previous start time is required for rescheduled event")
)

// Composer формирует текст уведомлений. Доставку выполняет внешний канал
type Composer struct {
	defaultRegion string
}

// NewComposer создает Composer. defaultRegion используется для номеров без кода страны
func NewComposer(defaultRegion string) *Composer {
	return &Composer{defaultRegion: defaultRegion}
}

// Compose собирает уведомление о событии записи.
// Даты форматируются в часовом поясе ресурса.
// previousStart обязателен для EventRescheduled и игнорируется для остальных событий
func (c *Composer) Compose(
	cfg *domain.ScheduleConfig,
	booking *domain.Booking,
	event domain.NotificationEvent,
	previousStart *time.Time,
) (*domain.Notification, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	salon := cfg.ResourceName
	if salon == "" {
		salon = fallbackSalonName
	}

	start := booking.StartTime.In(loc)
	when := fmt.Sprintf("%s at %s", start.Format(dateLayout), start.Format(timeLayout))

	var (
		recipient string
		message   string
	)

	switch event {
	case domain.EventRequested:
		recipient = cfg.ContactPhone
		message = fmt.Sprintf(
			"Hello %s, I would like to book %s on %s. Name: %s. Booking ref: %s",
			salon, booking.ServiceName, when, booking.ClientName, booking.ShortID(),
		)

	case domain.EventConfirmed:
		recipient = booking.ClientPhone
		message = fmt.Sprintf(
			"Hi %s, your appointment for %s at %s is confirmed for %s. Booking ref: %s",
			booking.ClientName, booking.ServiceName, salon, when, booking.ShortID(),
		)

	case domain.EventCancelled:
		recipient = booking.ClientPhone
		message = fmt.Sprintf(
			"Hi %s, your appointment for %s on %s has been cancelled. Booking ref: %s. Reply to this message to pick a new time.",
			booking.ClientName, booking.ServiceName, when, booking.ShortID(),
		)

	case domain.EventRescheduled:
		if previousStart == nil {
			return nil, ErrMissingPreviousStart
		}
		prev := previousStart.In(loc)
		recipient = booking.ClientPhone
		message = fmt.Sprintf(
			"Hi %s, your appointment for %s has been moved from %s at %s to %s. Booking ref: %s",
			booking.ClientName, booking.ServiceName,
			prev.Format(dateLayout), prev.Format(timeLayout), when, booking.ShortID(),
		)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEvent, event)
	}

	target, err := phone.Normalize(recipient, c.defaultRegion)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoTarget, strings.TrimSpace(recipient))
	}

	return &domain.Notification{
		Event:     event,
		BookingID: booking.ID,
		Target:    phone.Digits(target),
		Message:   message,
	}, nil
}

// EventForStatus возвращает событие уведомления для нового статуса.
// Уведомляются только подтверждение и отмена
func EventForStatus(status domain.BookingStatus) (domain.NotificationEvent, bool) {
	switch status {
	case domain.StatusConfirmed:
		return domain.EventConfirmed, true
	case domain.StatusCancelled:
		return domain.EventCancelled, true
	default:
		return "", false
	}
}
