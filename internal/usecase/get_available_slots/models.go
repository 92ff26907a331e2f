package get_available_slots

import (
	"time"

	"github.com/omerbhr129/meety-sub000/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	MeetingID int64     // ID встречи
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	MeetingID int64                  // ID встречи
	Date      time.Time              // Дата, на которую запрашивались слоты
	Slots     []domain.AvailableSlot // Свободные слоты по возрастанию
}
