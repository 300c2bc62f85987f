package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	// ErrInvalidPhone номер не разбирается или невозможен для региона
	ErrInvalidPhone = errors.New("invalid phone number")
)

// Normalize приводит номер к формату E.164 ("+919876543210").
// region используется для номеров без международного префикса
func Normalize(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhone
	}

	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return "", ErrInvalidPhone
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Digits возвращает номер без "+" (формат ссылок wa.me)
func Digits(e164 string) string {
	return strings.TrimPrefix(e164, "+")
}
