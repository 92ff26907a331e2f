package bookings

import (
	"context"
	"time"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/internal/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookedSlot, error)
	GetByMeetingWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookedSlot, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Meeting, error)
}

// EventPublisher асинхронная публикация доменных событий
type EventPublisher interface {
	Emit(event events.Event)
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	BookingStatusChanged(status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени в часовом поясе хоста
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
