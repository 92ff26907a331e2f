package create_booking

import (
	"errors"
	"time"

	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
	"github.com/omerbhr129/meety-sub000/internal/domain"
	createBooking "github.com/omerbhr129/meety-sub000/internal/usecase/create_booking"
	"github.com/omerbhr129/meety-sub000/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ParticipantID int64  `json:"participantId"`
	Date          string `json:"date"`      // "2025-10-15"
	StartTime     string `json:"startTime"` // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	MeetingID       int64  `json:"meetingId"`
	ParticipantID   int64  `json:"participantId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(meetingID int64) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		MeetingID:     meetingID,
		ParticipantID: r.ParticipantID,
		Date:          date,
		StartTime:     startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		MeetingID:       resp.MeetingID,
		ParticipantID:   resp.ParticipantID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
