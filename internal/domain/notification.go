package domain

import "net/url"

// NotificationEvent тип события для уведомления клиента
type NotificationEvent string

const (
	EventRequested   NotificationEvent = "requested"
	EventConfirmed   NotificationEvent = "confirmed"
	EventCancelled   NotificationEvent = "cancelled"
	EventRescheduled NotificationEvent = "rescheduled"
)

// Notification содержимое уведомления. Доставка выполняется внешним каналом
type Notification struct {
	Event     NotificationEvent
	BookingID string
	Target    string // Телефон получателя, только цифры в формате E.164
	Message   string
}

// Link ссылка на чат мессенджера с заполненным текстом
func (n *Notification) Link() string {
	if n.Target == "" {
		return ""
	}
	return "https://wa.me/" + n.Target + "?text=" + url.QueryEscape(n.Message)
}
