package meetings

import (
	"context"

	"github.com/omerbhr129/meety-sub000/internal/domain"
)

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error)
	GetByID(ctx context.Context, id int64) (*domain.Meeting, error)
	GetByHost(ctx context.Context, filter domain.MeetingsFilter) ([]*domain.Meeting, error)
	UpdateAvailability(ctx context.Context, id int64, durationMinutes int, availability domain.WeeklyAvailability) error
	SoftDelete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
