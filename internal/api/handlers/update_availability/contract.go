package update_availability

import (
	"context"

	"github.com/omerbhr129/meety-sub000/internal/service/meetings/models"
)

type MeetingService interface {
	UpdateAvailability(ctx context.Context, id int64, req *models.UpdateAvailabilityRequest) (*models.MeetingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
