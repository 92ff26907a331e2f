package create_booking

import (
	"time"

	"github.com/omerbhr129/meety-sub000/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	MeetingID     int64            // ID встречи
	ParticipantID int64            // ID участника
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	MeetingID       int64            // ID встречи
	ParticipantID   int64            // ID участника
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность встречи в минутах
	Status          string           // Статус бронирования

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
