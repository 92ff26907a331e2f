package get_meeting

import (
	"errors"
	"net/http"

	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
	"github.com/omerbhr129/meety-sub000/internal/service/meetings"
)

const (
	msgInvalidMeetingID = "некорректный ID встречи"
	msgNotFound         = "встреча не найдена"
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

// Handle GET /api/v1/meetings/{meetingId}
// Публичный эндпоинт: участнику нужны длительность и расписание встречи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := handlers.PathID(r, "meetingId")
	if err != nil {
		h.logger.Warn("GET /meetings/{id} - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	meeting, err := h.service.GetByID(r.Context(), meetingID)
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrMeetingNotFound):
			h.logger.Warn("GET /meetings/{id} - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /meetings/{id} - Failed to get meeting: meeting_id=%d, error=%v", meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /meetings/{id} - Meeting retrieved successfully: meeting_id=%d", meetingID)
	handlers.RespondJSON(w, http.StatusOK, meeting)
}
