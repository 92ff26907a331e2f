package update_availability

import (
	"errors"
	"net/http"

	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
	"github.com/omerbhr129/meety-sub000/internal/api/middleware"
	"github.com/omerbhr129/meety-sub000/internal/service/meetings"
)

const (
	msgInvalidMeetingID   = "некорректный ID встречи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "встреча не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректная длительность или расписание"
)

type Handler struct {
	service MeetingService
	logger  Logger
}

func NewHandler(service MeetingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/meetings/{meetingId}/availability
// Расписание заменяется целиком. Уже созданные бронирования не затрагиваются.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := handlers.PathID(r, "meetingId")
	if err != nil {
		h.logger.Warn("PUT /meetings/{id}/availability - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /meetings/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /meetings/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateAvailability(r.Context(), meetingID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrMeetingNotFound):
			h.logger.Warn("PUT /meetings/{id}/availability - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, meetings.ErrAccessDenied):
			h.logger.Warn("PUT /meetings/{id}/availability - Access denied: meeting_id=%d, user_id=%d",
				meetingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, meetings.ErrInvalidInput):
			h.logger.Warn("PUT /meetings/{id}/availability - Invalid data: meeting_id=%d, error=%v",
				meetingID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /meetings/{id}/availability - Failed to update availability: meeting_id=%d, error=%v",
				meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /meetings/{id}/availability - Availability updated successfully: meeting_id=%d", meetingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
