package create_booking

import (
	"fmt"

	"github.com/omerbhr129/meety-sub000/internal/availability"
	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MeetingID <= 0 {
		return fmt.Errorf("%w: meetingID must be positive", ErrInvalidInput)
	}

	if req.ParticipantID <= 0 {
		return fmt.Errorf("%w: participantID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Слот не может начинаться в 24:00
	if err := req.StartTime.Validate(); err != nil || req.StartTime.Minutes() >= types.MinutesPerDay {
		return fmt.Errorf("%w: invalid startTime %s", ErrInvalidInput, req.StartTime)
	}

	return nil
}

// validateTimeSlot проверяет, что время совпадает со слотом расписания на день недели даты.
// Занятость и текущее время здесь не учитываются.
func validateTimeSlot(meeting *domain.Meeting, req *Request) error {
	day := meeting.Availability.ForDate(req.Date)
	if !day.IsBookable() {
		return fmt.Errorf("%w: %s is not a bookable weekday", ErrInvalidTimeSlot, req.Date.Weekday())
	}

	for _, slot := range availability.GenerateDay(day.Windows, meeting.DurationMinutes) {
		if slot == req.StartTime {
			return nil
		}
	}

	return fmt.Errorf("%w: %s is not a slot start on %s", ErrInvalidTimeSlot,
		req.StartTime, req.Date.Format(domain.DateFormat))
}
