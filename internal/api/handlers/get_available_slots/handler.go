package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
	getAvailableSlots "github.com/omerbhr129/meety-sub000/internal/usecase/get_available_slots"
)

const (
	msgInvalidMeetingID = "некорректный ID встречи"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMeetingNotFound  = "встреча не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/meetings/{meetingId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := handlers.PathID(r, "meetingId")
	if err != nil {
		h.logger.Warn("GET /meetings/{id}/available-slots - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /meetings/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(meetingID, dateStr)
	if err != nil {
		h.logger.Warn("GET /meetings/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMeetingNotFound):
			h.logger.Warn("GET /meetings/{id}/available-slots - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgMeetingNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /meetings/{id}/available-slots - Invalid input: meeting_id=%d, error=%v", meetingID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /meetings/{id}/available-slots - Failed to get slots: meeting_id=%d, error=%v",
				meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /meetings/{id}/available-slots - Slots retrieved successfully: meeting_id=%d, date=%s, slots_count=%d",
		meetingID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
