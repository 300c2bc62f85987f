package models

// FeaturesResponse состояние переключателей салона
type FeaturesResponse struct {
	BookingCalendarEnabled bool `json:"booking_calendar_enabled"`
}

// UpdateFeaturesRequest запрос на изменение переключателей.
// nil означает, что значение не меняется
type UpdateFeaturesRequest struct {
	BookingCalendarEnabled *bool `json:"booking_calendar_enabled"`
}
