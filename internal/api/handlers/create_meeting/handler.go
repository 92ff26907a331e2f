package create_meeting

import (
	"errors"
	"net/http"

	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
	"github.com/omerbhr129/meety-sub000/internal/api/middleware"
	"github.com/omerbhr129/meety-sub000/internal/service/meetings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "некорректные данные встречи или расписания"
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

// Handle POST /api/v1/meetings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /meetings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateMeetingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /meetings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrInvalidInput):
			h.logger.Warn("POST /meetings - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /meetings - Failed to create meeting: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /meetings - Meeting created successfully: meeting_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
