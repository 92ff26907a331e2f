package update_availability

import (
	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/internal/service/meetings/models"
)

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	DurationMinutes *int                      `json:"durationMinutes,omitempty"`
	Availability    domain.WeeklyAvailability `json:"availability"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(userID int64) *models.UpdateAvailabilityRequest {
	return &models.UpdateAvailabilityRequest{
		UserID:          userID,
		DurationMinutes: r.DurationMinutes,
		Availability:    r.Availability,
	}
}
