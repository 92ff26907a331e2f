package models

import (
	"time"

	"github.com/omerbhr129/meety-sub000/internal/domain"
)

// Request модели

// CreateMeetingRequest запрос на создание встречи
type CreateMeetingRequest struct {
	UserID          int64                     `json:"-"` // ID хоста из заголовка авторизации
	Title           string                    `json:"title"`
	Description     *string                   `json:"description,omitempty"`
	DurationMinutes *int                      `json:"durationMinutes,omitempty"` // По умолчанию 30
	Availability    domain.WeeklyAvailability `json:"availability"`
}

// UpdateAvailabilityRequest запрос на замену длительности и недельного расписания.
// Расписание заменяется целиком, дни недели без записи выключаются.
type UpdateAvailabilityRequest struct {
	UserID          int64                     `json:"-"`
	DurationMinutes *int                      `json:"durationMinutes,omitempty"` // nil - длительность не меняется
	Availability    domain.WeeklyAvailability `json:"availability"`
}

// Response модели

// MeetingResponse ответ с данными встречи
type MeetingResponse struct {
	ID              int64                     `json:"id"`
	HostID          int64                     `json:"hostId"`
	Title           string                    `json:"title"`
	Description     *string                   `json:"description,omitempty"`
	DurationMinutes int                       `json:"durationMinutes"`
	Availability    domain.WeeklyAvailability `json:"availability"`
	Bookable        bool                      `json:"bookable"` // Есть хотя бы один включенный день с окнами
	Status          string                    `json:"status"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

// MeetingListResponse ответ со списком встреч
type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}

// Методы конвертации

// FromDomainMeeting конвертирует domain модель в DTO
func FromDomainMeeting(m *domain.Meeting) *MeetingResponse {
	if m == nil {
		return nil
	}

	return &MeetingResponse{
		ID:              m.ID,
		HostID:          m.HostID,
		Title:           m.Title,
		Description:     m.Description,
		DurationMinutes: m.DurationMinutes,
		Availability:    m.Availability,
		Bookable:        m.Availability.HasBookableDays(),
		Status:          string(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomainMeetingList конвертирует список domain моделей в DTO
func FromDomainMeetingList(meetings []*domain.Meeting) *MeetingListResponse {
	resp := &MeetingListResponse{
		Meetings: make([]MeetingResponse, 0, len(meetings)),
	}

	for _, m := range meetings {
		if meetingResp := FromDomainMeeting(m); meetingResp != nil {
			resp.Meetings = append(resp.Meetings, *meetingResp)
		}
	}

	return resp
}
