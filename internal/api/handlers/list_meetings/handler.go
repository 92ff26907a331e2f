package list_meetings

import (
	"net/http"

	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
	"github.com/omerbhr129/meety-sub000/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
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

// Handle GET /api/v1/meetings
// Возвращает активные встречи текущего пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /meetings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListByHost(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /meetings - Failed to list meetings: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /meetings - Meetings retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Meetings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
