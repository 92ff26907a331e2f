package reconcile_bookings

import (
	"errors"
	"net/http"

	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
	"github.com/omerbhr129/meety-sub000/internal/api/middleware"
	"github.com/omerbhr129/meety-sub000/internal/service/bookings"
)

const (
	msgInvalidMeetingID = "некорректный ID встречи"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgMeetingNotFound  = "встреча не найдена"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/meetings/{meetingId}/bookings/reconcile
// Переводит прошедшие ожидающие бронирования в completed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := handlers.PathID(r, "meetingId")
	if err != nil {
		h.logger.Warn("POST /meetings/{id}/bookings/reconcile - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /meetings/{id}/bookings/reconcile - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Reconcile(r.Context(), meetingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrMeetingNotFound):
			h.logger.Warn("POST /meetings/{id}/bookings/reconcile - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgMeetingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /meetings/{id}/bookings/reconcile - Access denied: meeting_id=%d, user_id=%d",
				meetingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /meetings/{id}/bookings/reconcile - Failed to reconcile: meeting_id=%d, error=%v",
				meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /meetings/{id}/bookings/reconcile - Reconciled: meeting_id=%d, completed=%d",
		meetingID, result.Completed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
