package get_meeting_bookings

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
	msgInvalidParams    = "некорректные параметры запроса"
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

// Handle GET /api/v1/meetings/{meetingId}/bookings
// Query params: from, to (YYYY-MM-DD), status, includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := handlers.PathID(r, "meetingId")
	if err != nil {
		h.logger.Warn("GET /meetings/{id}/bookings - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /meetings/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(meetingID, userID,
		query.Get("from"), query.Get("to"), query.Get("status"), query.Get("includeCancelled"))
	if err != nil {
		h.logger.Warn("GET /meetings/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListByMeeting(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput), errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("GET /meetings/{id}/bookings - Invalid parameters: meeting_id=%d, error=%v", meetingID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrMeetingNotFound):
			h.logger.Warn("GET /meetings/{id}/bookings - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgMeetingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /meetings/{id}/bookings - Access denied: meeting_id=%d, user_id=%d",
				meetingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /meetings/{id}/bookings - Failed to get bookings: meeting_id=%d, error=%v",
				meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /meetings/{id}/bookings - Bookings retrieved successfully: meeting_id=%d, count=%d",
		meetingID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
