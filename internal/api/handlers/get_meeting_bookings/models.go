package get_meeting_bookings

import (
	"fmt"
	"strconv"

	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
	"github.com/omerbhr129/meety-sub000/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	meetingID int64,
	userID int64,
	fromStr string,
	toStr string,
	statusStr string,
	includeCancelledStr string,
) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		UserID:    userID,
		MeetingID: meetingID,
	}

	if fromStr != "" {
		from, err := handlers.ParseDate(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := handlers.ParseDate(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.EndDate = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
