package delete_meeting

import "context"

type MeetingService interface {
	Delete(ctx context.Context, id int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
