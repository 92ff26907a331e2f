package domain

import "github.com/omerbhr129/meety-sub000/pkg/types"

// AvailableSlot represents a time slot available for booking
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// EndTime returns the slot end; slots never cross midnight
func (s AvailableSlot) EndTime() types.TimeString {
	return types.TimeString(s.StartTime.Minutes() + s.DurationMinutes)
}
