package delete_meeting

import (
	"errors"
	"net/http"

	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
	"github.com/omerbhr129/meety-sub000/internal/api/middleware"
	"github.com/omerbhr129/meety-sub000/internal/service/meetings"
)

const (
	msgInvalidMeetingID = "некорректный ID встречи"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "встреча не найдена"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/meetings/{meetingId}
// Мягкое удаление: встреча перестает принимать бронирования, история сохраняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := handlers.PathID(r, "meetingId")
	if err != nil {
		h.logger.Warn("DELETE /meetings/{id} - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /meetings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), meetingID, userID); err != nil {
		switch {
		case errors.Is(err, meetings.ErrMeetingNotFound):
			h.logger.Warn("DELETE /meetings/{id} - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, meetings.ErrAccessDenied):
			h.logger.Warn("DELETE /meetings/{id} - Access denied: meeting_id=%d, user_id=%d", meetingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /meetings/{id} - Failed to delete meeting: meeting_id=%d, error=%v", meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /meetings/{id} - Meeting deleted successfully: meeting_id=%d, user_id=%d", meetingID, userID)
	handlers.RespondNoContent(w)
}
