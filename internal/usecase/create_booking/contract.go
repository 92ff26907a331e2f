package create_booking

import (
	"context"
	"time"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/internal/events"
	"github.com/omerbhr129/meety-sub000/internal/integrations/participantservice"
)

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Meeting, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.BookedSlot) (*domain.BookedSlot, error)
	GetByMeetingWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookedSlot, error)
}

// ParticipantServiceClient интерфейс клиента для ParticipantService
type ParticipantServiceClient interface {
	GetParticipant(ctx context.Context, participantID int64) (*participantservice.Participant, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher асинхронная публикация доменных событий
type EventPublisher interface {
	Emit(event events.Event)
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	BookingCreated(status string)
	BookingConflict()
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
