package create_meeting

import (
	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/internal/service/meetings/models"
)

// CreateMeetingRequest HTTP request model
type CreateMeetingRequest struct {
	Title           string                    `json:"title"`
	Description     *string                   `json:"description,omitempty"`
	DurationMinutes *int                      `json:"durationMinutes,omitempty"`
	Availability    domain.WeeklyAvailability `json:"availability"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateMeetingRequest) ToServiceRequest(userID int64) *models.CreateMeetingRequest {
	return &models.CreateMeetingRequest{
		UserID:          userID,
		Title:           r.Title,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Availability:    r.Availability,
	}
}
