package get_meeting_bookings

import (
	"context"

	"github.com/omerbhr129/meety-sub000/internal/service/bookings/models"
)

type BookingService interface {
	ListByMeeting(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
