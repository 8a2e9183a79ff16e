package domain

// Default configuration values
const (
	DefaultOpenTime                 = "09:00"
	DefaultCloseTime                = "20:00"
	DefaultGranularityMinutes       = 30
	DefaultMinNoticeMinutes         = 0
	DefaultCommissionPercent        = 50
	DefaultProductCommissionPercent = 10
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNotesLength            = 500
	MaxNameLength             = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
