package domain

import (
	"fmt"
	"time"

	"github.com/omerbhr129/meety-sub000/pkg/types"
)

// BookingStatus represents the status of a booked slot
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusCompleted BookingStatus = "completed"
	StatusMissed    BookingStatus = "missed"
	StatusCancelled BookingStatus = "cancelled"
)

// BookedSlot is a committed reservation of one slot by one participant
type BookedSlot struct {
	ID            int64
	MeetingID     int64
	ParticipantID int64
	Date          time.Time        // Календарная дата, время суток не используется
	Time          types.TimeString // Время начала слота
	Status        BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its (date, time)
func (b *BookedSlot) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *BookedSlot) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// StartsAt returns the wall-clock instant of the slot in the host location
func (b *BookedSlot) StartsAt(loc *time.Location) time.Time {
	return b.Time.On(b.Date, loc)
}

// IsElapsed returns true if the slot start is at or before now
func (b *BookedSlot) IsElapsed(now time.Time) bool {
	return !b.StartsAt(now.Location()).After(now)
}

// NeedsStatusDecision returns true for a pending booking whose time has passed.
// Such bookings are presented as awaiting a host decision; nothing flips them implicitly.
func (b *BookedSlot) NeedsStatusDecision(now time.Time) bool {
	return b.Status == StatusPending && b.IsElapsed(now)
}

// CanTransitionTo checks a manual status change.
// pending -> completed|missed|cancelled, completed <-> missed, cancelled is terminal.
// Setting the current status again is allowed and is a no-op for the caller.
func (b *BookedSlot) CanTransitionTo(target BookingStatus) error {
	if !target.IsManual() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	if b.Status == target {
		return nil
	}

	switch b.Status {
	case StatusPending:
		return nil
	case StatusCompleted, StatusMissed:
		if target == StatusCompleted || target == StatusMissed {
			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, target)
}

// InitialStatus returns the status assigned at creation:
// completed if the slot instant is at or before now, pending otherwise
func InitialStatus(date time.Time, start types.TimeString, now time.Time) BookingStatus {
	if !start.On(date, now.Location()).After(now) {
		return StatusCompleted
	}
	return StatusPending
}

// IsManual returns true if the status can be set by explicit host action
func (s BookingStatus) IsManual() bool {
	for _, manual := range ManualStatuses {
		if s == manual {
			return true
		}
	}
	return false
}

// ParseBookingStatus converts a string to a known BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusCompleted, StatusMissed, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// BookingsFilter фильтр для получения бронирований встречи
type BookingsFilter struct {
	MeetingID        int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные бронирования
}

// IsSingleDate returns true if the filter targets exactly one calendar day
func (f BookingsFilter) IsSingleDate() bool {
	return f.StartDate != nil && f.EndDate != nil && IsSameDay(*f.StartDate, *f.EndDate)
}
