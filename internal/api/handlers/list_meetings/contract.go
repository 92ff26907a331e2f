package list_meetings

import (
	"context"

	"github.com/omerbhr129/meety-sub000/internal/service/meetings/models"
)

type MeetingService interface {
	ListByHost(ctx context.Context, userID int64) (*models.MeetingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
