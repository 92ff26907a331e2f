package domain

import (
	"fmt"
	"time"
)

// MeetingStatus represents the lifecycle status of a meeting type
type MeetingStatus string

const (
	MeetingStatusActive  MeetingStatus = "active"
	MeetingStatusDeleted MeetingStatus = "deleted"
)

// Meeting is a bookable meeting type with a recurring weekly availability template
type Meeting struct {
	ID              int64
	HostID          int64
	Title           string
	Description     *string
	DurationMinutes int
	Availability    WeeklyAvailability
	Status          MeetingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted returns true if the meeting was soft-deleted
func (m *Meeting) IsDeleted() bool {
	return m.Status == MeetingStatusDeleted
}

// IsOwnedBy returns true if the user is the host of the meeting
func (m *Meeting) IsOwnedBy(userID int64) bool {
	return m.HostID == userID
}

// ValidateDuration checks the meeting duration bounds
func ValidateDuration(durationMinutes int) error {
	if durationMinutes < MinMeetingDurationMinutes || durationMinutes > MaxMeetingDurationMinutes {
		return fmt.Errorf("%w: must be between %d and %d minutes, got %d",
			ErrInvalidDuration, MinMeetingDurationMinutes, MaxMeetingDurationMinutes, durationMinutes)
	}
	return nil
}

// MeetingsFilter фильтр для получения встреч хоста
type MeetingsFilter struct {
	HostID         int64 // Обязательный параметр
	IncludeDeleted bool  // Включать ли удаленные встречи
}
