package get_available_slots

import (
	"context"
	"time"

	"github.com/omerbhr129/meety-sub000/internal/domain"
)

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Meeting, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByMeetingWithFilter получает бронирования встречи с фильтром (по умолчанию только активные)
	GetByMeetingWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookedSlot, error)
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

// RealTimeProvider реальный провайдер времени для production.
// Время возвращается в часовом поясе хоста.
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
