package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// Default configuration values
const (
	DefaultSlotStepMinutes = 30
	DefaultTotalSeats      = 1
	DefaultTimezone        = "Asia/Kolkata"
)

// Рабочее окно для дней, отсутствующих в расписании
var (
	DefaultOpenTime  = types.TimeString("10:00")
	DefaultCloseTime = types.TimeString("20:00")
)

// Параметры поиска ближайших слотов
const (
	NextAvailableHorizonDays  = 14
	DefaultNextAvailableLimit = 3
	MaxNextAvailableLimit     = 50
)

// Business validation constants
const (
	MinSlotStepMinutes    = 5
	MaxSlotStepMinutes    = 240
	MinTotalSeats         = 1
	MaxTotalSeats         = 100
	MaxDurationMinutes    = 720 // 12 hours
	MaxServicesPerBooking = 10
	MaxClientNameLength   = 120
	MaxNotesLength        = 500
	MaxReasonLength       = 500
	ShortIDLength         = 8
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
