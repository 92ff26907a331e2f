package get_available_slots

import (
	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
	"github.com/omerbhr129/meety-sub000/internal/domain"
	getAvailableSlots "github.com/omerbhr129/meety-sub000/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	MeetingID int64           `json:"meetingId"`
	Date      string          `json:"date"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime().String(),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		MeetingID: resp.MeetingID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(meetingID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		MeetingID: meetingID,
		Date:      date,
	}, nil
}
