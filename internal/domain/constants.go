package domain

// Default configuration values
const (
	DefaultMeetingDurationMinutes = 30
)

// Business validation constants
const (
	MinMeetingDurationMinutes = 5
	MaxMeetingDurationMinutes = 480 // 8 hours
	MaxMeetingTitleLength     = 200
	MaxWindowsPerDay          = 48
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, которые не занимают слот
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ManualStatuses статусы, которые хост может выставить вручную
var ManualStatuses = []BookingStatus{
	StatusCompleted,
	StatusMissed,
	StatusCancelled,
}
