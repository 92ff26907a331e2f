package reconcile_bookings

import (
	"context"

	"github.com/omerbhr129/meety-sub000/internal/service/bookings/models"
)

type BookingService interface {
	Reconcile(ctx context.Context, meetingID int64, userID int64) (*models.ReconcileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
